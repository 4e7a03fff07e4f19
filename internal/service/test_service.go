package service

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/bkit-solutions/LMS-sub000/config"
	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/dto"
	"github.com/bkit-solutions/LMS-sub000/internal/grading"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"github.com/bkit-solutions/LMS-sub000/internal/repository"
)

type TestService interface {
	CreateTest(principal *auth.Principal, req dto.CreateTestRequest) (*dto.TestResponse, error)
	UpdateTest(principal *auth.Principal, id uint, req dto.UpdateTestRequest) (*dto.TestResponse, error)
	DeleteTest(principal *auth.Principal, id uint) error
	GetTest(principal *auth.Principal, id uint) (*dto.TestResponse, error)
	ListTests(principal *auth.Principal) ([]dto.TestResponse, error)
}

type testService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	policyCfg    config.Policy
}

func NewTestService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository, cfg *config.Config) TestService {
	return &testService{testRepo: testRepo, questionRepo: questionRepo, policyCfg: cfg.Policy}
}

func (s *testService) CreateTest(principal *auth.Principal, req dto.CreateTestRequest) (*dto.TestResponse, error) {
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	test := model.Test{
		Title:              req.Title,
		Description:        req.Description,
		CreatedBy:          principal.UserID,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Published:          req.Published,
		MaxAttempts:        req.MaxAttempts,
		MaxViolations:      req.MaxViolations,
		ProctoringRequired: req.ProctoringRequired,
		DurationMinutes:    req.DurationMinutes,
	}
	if test.MaxViolations <= 0 {
		test.MaxViolations = s.policyCfg.DefaultMaxViolations
	}

	for _, qr := range req.Questions {
		question := model.Question{}
		copier.Copy(&question, &qr)
		if err := grading.ValidateQuestion(&question); err != nil {
			return nil, err
		}
		test.Questions = append(test.Questions, question)
	}
	test.TotalMarks = grading.TotalMarks(test.Questions)

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("Failed to create test")
		return nil, err
	}

	var resp dto.TestResponse
	copier.Copy(&resp, &test)
	return &resp, nil
}

func (s *testService) UpdateTest(principal *auth.Principal, id uint, req dto.UpdateTestRequest) (*dto.TestResponse, error) {
	test, err := s.findOwned(principal, id)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	test.Title = req.Title
	test.Description = req.Description
	test.StartTime = req.StartTime
	test.EndTime = req.EndTime
	test.Published = req.Published
	test.MaxAttempts = req.MaxAttempts
	test.MaxViolations = req.MaxViolations
	test.ProctoringRequired = req.ProctoringRequired
	test.DurationMinutes = req.DurationMinutes
	if test.MaxViolations <= 0 {
		test.MaxViolations = s.policyCfg.DefaultMaxViolations
	}

	if err := s.testRepo.Update(test); err != nil {
		return nil, err
	}
	var resp dto.TestResponse
	copier.Copy(&resp, test)
	return &resp, nil
}

func (s *testService) DeleteTest(principal *auth.Principal, id uint) error {
	if _, err := s.findOwned(principal, id); err != nil {
		return err
	}
	return s.testRepo.Delete(id)
}

func (s *testService) GetTest(principal *auth.Principal, id uint) (*dto.TestResponse, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Test not found")
		}
		return nil, err
	}
	var resp dto.TestResponse
	copier.Copy(&resp, test)
	return &resp, nil
}

func (s *testService) ListTests(principal *auth.Principal) ([]dto.TestResponse, error) {
	tests, err := s.testRepo.FindAllByCreator(principal.UserID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TestResponse, 0, len(tests))
	copier.Copy(&resp, &tests)
	return resp, nil
}

func (s *testService) findOwned(principal *auth.Principal, id uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Test not found")
		}
		return nil, err
	}
	if test.CreatedBy != principal.UserID {
		return nil, apperror.Forbidden("Test belongs to another creator")
	}
	return test, nil
}

// validateWindow enforces the test-level invariant: when both ends are set,
// the window must not be inverted.
func validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperror.BadRequest("End time must not precede start time")
	}
	return nil
}
