package repository

import (
	"errors"

	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"gorm.io/gorm"
)

type SessionReportRepository interface {
	FindOrCreateByAttemptID(attemptID uint) (*model.SessionReport, error)
	FindByAttemptID(attemptID uint) (*model.SessionReport, error)
	Update(report *model.SessionReport) error
}

type sessionReportRepository struct {
	db *gorm.DB
}

func NewSessionReportRepository(db *gorm.DB) SessionReportRepository {
	return &sessionReportRepository{db: db}
}

func (r *sessionReportRepository) FindOrCreateByAttemptID(attemptID uint) (*model.SessionReport, error) {
	var report model.SessionReport
	err := r.db.Where("attempt_id = ?", attemptID).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		report = model.SessionReport{AttemptID: attemptID, Valid: true}
		if err := r.db.Create(&report).Error; err != nil {
			return nil, err
		}
		return &report, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *sessionReportRepository) FindByAttemptID(attemptID uint) (*model.SessionReport, error) {
	var report model.SessionReport
	if err := r.db.Where("attempt_id = ?", attemptID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *sessionReportRepository) Update(report *model.SessionReport) error {
	return r.db.Save(report).Error
}
