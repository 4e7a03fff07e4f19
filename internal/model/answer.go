package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer holds the raw submitted text and the correctness verdict computed
// at write time. Unique per (attempt, question); re-submission overwrites.
type Answer struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;uniqueIndex:uq_answer_attempt_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;uniqueIndex:uq_answer_attempt_question"`
	Question   Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText string         `json:"answer_text" gorm:"type:text"`
	Correct    bool           `json:"correct" gorm:"default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
