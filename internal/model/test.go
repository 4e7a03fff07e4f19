package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description,omitempty"`
	CreatedBy          uint           `json:"created_by" gorm:"not null;index"`
	StartTime          *time.Time     `json:"start_time,omitempty"`
	EndTime            *time.Time     `json:"end_time,omitempty"`
	Published          bool           `json:"published" gorm:"default:false"`
	MaxAttempts        int            `json:"max_attempts" gorm:"default:1"`
	MaxViolations      int            `json:"max_violations"`
	ProctoringRequired bool           `json:"proctoring_required" gorm:"default:false"`
	DurationMinutes    int            `json:"duration_minutes"`
	TotalMarks         int            `json:"total_marks"` // derived from question marks, never authored
	Questions          []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
