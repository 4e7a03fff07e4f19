package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// QuestionResponse is the authoring-side view of a question, correctness
// data included.
type QuestionResponse struct {
	ID             uint    `json:"id"`
	TestID         uint    `json:"test_id"`
	Type           string  `json:"type"`
	Text           string  `json:"text"`
	OptionA        *string `json:"option_a,omitempty"`
	OptionB        *string `json:"option_b,omitempty"`
	OptionC        *string `json:"option_c,omitempty"`
	OptionD        *string `json:"option_d,omitempty"`
	CorrectOption  *string `json:"correct_option,omitempty"`
	CorrectOptions *string `json:"correct_options,omitempty"`
	CorrectAnswer  *string `json:"correct_answer,omitempty"`
	Marks          int     `json:"marks"`
	NegativeMarks  int     `json:"negative_marks"`
}

// SanitizedQuestionResponse is the learner-side view: no correctness data
// and no mark weights beyond what the client needs to render the question.
type SanitizedQuestionResponse struct {
	ID      uint    `json:"id"`
	TestID  uint    `json:"test_id"`
	Type    string  `json:"type"`
	Text    string  `json:"text"`
	OptionA *string `json:"option_a,omitempty"`
	OptionB *string `json:"option_b,omitempty"`
	OptionC *string `json:"option_c,omitempty"`
	OptionD *string `json:"option_d,omitempty"`
	Marks   int     `json:"marks"`
}

type TestResponse struct {
	ID                 uint               `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	CreatedBy          uint               `json:"created_by"`
	StartTime          *time.Time         `json:"start_time,omitempty"`
	EndTime            *time.Time         `json:"end_time,omitempty"`
	Published          bool               `json:"published"`
	MaxAttempts        int                `json:"max_attempts"`
	MaxViolations      int                `json:"max_violations"`
	ProctoringRequired bool               `json:"proctoring_required"`
	DurationMinutes    int                `json:"duration_minutes"`
	TotalMarks         int                `json:"total_marks"`
	Questions          []QuestionResponse `json:"questions,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

type AttemptResponse struct {
	ID            uint       `json:"id"`
	TestID        uint       `json:"test_id"`
	StudentID     uint       `json:"student_id"`
	AttemptNumber int        `json:"attempt_number"`
	StartedAt     time.Time  `json:"started_at"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	Completed     bool       `json:"completed"`
	Score         int        `json:"score"`
}

// AttemptStateResponse is the resume read-model: attempt metadata, the
// test's questions with correct-answer fields stripped, and the student's
// saved answer text per question. Correctness flags never appear here.
type AttemptStateResponse struct {
	AttemptID          uint                        `json:"attempt_id"`
	TestID             uint                        `json:"test_id"`
	TestTitle          string                      `json:"test_title"`
	AttemptNumber      int                         `json:"attempt_number"`
	Completed          bool                        `json:"completed"`
	StartedAt          time.Time                   `json:"started_at"`
	SubmittedAt        *time.Time                  `json:"submitted_at,omitempty"`
	ProctoringRequired bool                        `json:"proctoring_required"`
	DurationMinutes    int                         `json:"duration_minutes"`
	MaxViolations      int                         `json:"max_violations"`
	Questions          []SanitizedQuestionResponse `json:"questions"`
	SavedAnswers       map[uint]string             `json:"saved_answers"`
}

type SessionReportResponse struct {
	AttemptID       uint `json:"attempt_id"`
	TabSwitches     int  `json:"tab_switches"`
	FaceViolations  int  `json:"face_violations"`
	AudioViolations int  `json:"audio_violations"`
	Terminated      bool `json:"terminated"`
	Valid           bool `json:"valid"`
}
