package model

import (
	"time"

	"gorm.io/gorm"
)

// SessionReport accumulates proctoring telemetry for one attempt. The engine
// only records counters and the validity verdict; it never analyzes them.
type SessionReport struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	AttemptID       uint           `json:"attempt_id" gorm:"not null;uniqueIndex"`
	TabSwitches     int            `json:"tab_switches" gorm:"default:0"`
	FaceViolations  int            `json:"face_violations" gorm:"default:0"`
	AudioViolations int            `json:"audio_violations" gorm:"default:0"`
	Terminated      bool           `json:"terminated" gorm:"default:false"`
	Valid           bool           `json:"valid" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TotalViolations is the figure compared against a test's max-violations cap.
func (r *SessionReport) TotalViolations() int {
	return r.TabSwitches + r.FaceViolations + r.AudioViolations
}
