package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/dto"
	"github.com/bkit-solutions/LMS-sub000/internal/repository"
)

// SessionReportService records proctoring telemetry against an attempt. The
// scoring engine never interprets these counters; the validity verdict is an
// opaque pass/fail signal for downstream consumers.
type SessionReportService interface {
	RecordViolation(principal *auth.Principal, attemptID uint, kind string) (*dto.SessionReportResponse, error)
	GetReport(principal *auth.Principal, attemptID uint) (*dto.SessionReportResponse, error)
}

type sessionReportService struct {
	reportRepo  repository.SessionReportRepository
	attemptRepo repository.AttemptRepository
	testRepo    repository.TestRepository
}

func NewSessionReportService(
	reportRepo repository.SessionReportRepository,
	attemptRepo repository.AttemptRepository,
	testRepo repository.TestRepository,
) SessionReportService {
	return &sessionReportService{reportRepo: reportRepo, attemptRepo: attemptRepo, testRepo: testRepo}
}

func (s *sessionReportService) RecordViolation(principal *auth.Principal, attemptID uint, kind string) (*dto.SessionReportResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Attempt not found")
		}
		return nil, err
	}
	if attempt.StudentID != principal.UserID {
		return nil, apperror.Forbidden("Attempt belongs to another student")
	}

	report, err := s.reportRepo.FindOrCreateByAttemptID(attemptID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "tab_switch":
		report.TabSwitches++
	case "face":
		report.FaceViolations++
	case "audio":
		report.AudioViolations++
	default:
		return nil, apperror.BadRequest("Unknown violation kind: " + kind)
	}

	test, err := s.testRepo.FindByID(attempt.TestID)
	if err != nil {
		return nil, err
	}
	if test.MaxViolations > 0 && report.TotalViolations() > test.MaxViolations {
		report.Valid = false
		report.Terminated = true
		log.Warn().
			Uint("attemptID", attemptID).
			Int("violations", report.TotalViolations()).
			Int("maxViolations", test.MaxViolations).
			Msg("Violation cap exceeded, session marked invalid")
	}

	if err := s.reportRepo.Update(report); err != nil {
		return nil, err
	}

	var resp dto.SessionReportResponse
	copier.Copy(&resp, report)
	return &resp, nil
}

func (s *sessionReportService) GetReport(principal *auth.Principal, attemptID uint) (*dto.SessionReportResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Attempt not found")
		}
		return nil, err
	}
	if principal.Role.IsLearner() && attempt.StudentID != principal.UserID {
		return nil, apperror.Forbidden("Attempt belongs to another student")
	}

	report, err := s.reportRepo.FindByAttemptID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No session report for this attempt")
		}
		return nil, err
	}
	var resp dto.SessionReportResponse
	copier.Copy(&resp, report)
	return &resp, nil
}
