package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types supported by the grading engine.
const (
	QuestionTypeSingleCorrect = "single_correct"
	QuestionTypeMultiCorrect  = "multi_correct"
	QuestionTypeFillBlank     = "fill_blank"
)

type Question struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	TestID uint   `json:"test_id" gorm:"not null;index"`
	Type   string `json:"type" gorm:"not null"` // "single_correct", "multi_correct", "fill_blank"
	Text   string `json:"text" gorm:"type:text;not null"`

	OptionA *string `json:"option_a,omitempty"`
	OptionB *string `json:"option_b,omitempty"`
	OptionC *string `json:"option_c,omitempty"`
	OptionD *string `json:"option_d,omitempty"`

	// Correctness data, one of the three depending on Type. CorrectOptions is
	// also accepted on single_correct rows for legacy data.
	CorrectOption  *string `json:"correct_option,omitempty"`
	CorrectOptions *string `json:"correct_options,omitempty"` // comma-separated label set
	CorrectAnswer  *string `json:"correct_answer,omitempty" gorm:"type:text"`

	Marks         int `json:"marks"`
	NegativeMarks int `json:"negative_marks"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
