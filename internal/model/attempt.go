package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt is the single row per (test, student). Re-starting before the
// max-attempt cap bumps AttemptNumber in place on this row; a new row is
// never created for the same pair.
type Attempt struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;uniqueIndex:uq_attempt_test_student"`
	Test          Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID     uint           `json:"student_id" gorm:"not null;uniqueIndex:uq_attempt_test_student"`
	AttemptNumber int            `json:"attempt_number" gorm:"not null;default:1"`
	StartedAt     time.Time      `json:"started_at"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	Completed     bool           `json:"completed" gorm:"default:false"`
	Score         int            `json:"score" gorm:"default:0"`
	Answers       []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
