package dto

import "time"

// CreateTestRequest is the authoring payload for a new test. TotalMarks is
// never accepted here; it is derived from question marks.
type CreateTestRequest struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description,omitempty"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	Published          bool       `json:"published"`
	MaxAttempts        int        `json:"max_attempts"`
	MaxViolations      int        `json:"max_violations"`
	ProctoringRequired bool       `json:"proctoring_required"`
	DurationMinutes    int        `json:"duration_minutes"`

	Questions []CreateQuestionRequest `json:"questions,omitempty" binding:"dive"`
}

// UpdateTestRequest mirrors CreateTestRequest for metadata updates.
type UpdateTestRequest struct {
	Title              string     `json:"title" binding:"required"`
	Description        string     `json:"description,omitempty"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	Published          bool       `json:"published"`
	MaxAttempts        int        `json:"max_attempts"`
	MaxViolations      int        `json:"max_violations"`
	ProctoringRequired bool       `json:"proctoring_required"`
	DurationMinutes    int        `json:"duration_minutes"`
}

type CreateQuestionRequest struct {
	Type string `json:"type" binding:"required,oneof=single_correct multi_correct fill_blank"`
	Text string `json:"text" binding:"required"`

	OptionA *string `json:"option_a"`
	OptionB *string `json:"option_b"`
	OptionC *string `json:"option_c"`
	OptionD *string `json:"option_d"`

	CorrectOption  *string `json:"correct_option"`
	CorrectOptions *string `json:"correct_options"`
	CorrectAnswer  *string `json:"correct_answer"`

	Marks         int `json:"marks"`
	NegativeMarks int `json:"negative_marks"`
}

// SubmitAnswerRequest carries one answer for one question of an active
// attempt.
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text"`
}

// RecordViolationRequest increments one proctoring counter on an attempt's
// session report.
type RecordViolationRequest struct {
	Kind string `json:"kind" binding:"required,oneof=tab_switch face audio"`
}
