package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/dto"
	"github.com/bkit-solutions/LMS-sub000/internal/grading"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"github.com/bkit-solutions/LMS-sub000/internal/repository"
)

// AttemptStateService assembles the resume read-model: attempt metadata, the
// test's questions with correct-answer data stripped, and the student's saved
// answer text per question. It never mutates attempt state and never exposes
// correctness flags.
type AttemptStateService interface {
	GetAttemptState(principal *auth.Principal, attemptID uint) (*dto.AttemptStateResponse, error)
	GetAttemptStateByTest(principal *auth.Principal, testID uint) (*dto.AttemptStateResponse, error)
}

type attemptStateService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	answerRepo  repository.AnswerRepository
}

func NewAttemptStateService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
) AttemptStateService {
	return &attemptStateService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
	}
}

func (s *attemptStateService) GetAttemptState(principal *auth.Principal, attemptID uint) (*dto.AttemptStateResponse, error) {
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

	test, err := s.testRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Test not found")
		}
		return nil, err
	}
	return s.assemble(test, attempt)
}

// GetAttemptStateByTest resolves the caller's current attempt for the test,
// after verifying the test belongs to the caller's tenant.
func (s *attemptStateService) GetAttemptStateByTest(principal *auth.Principal, testID uint) (*dto.AttemptStateResponse, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Test not found")
		}
		return nil, err
	}
	if test.CreatedBy != principal.AdminID && test.CreatedBy != principal.UserID {
		return nil, apperror.Forbidden("Test is not assigned to your institution")
	}

	attempt, err := s.attemptRepo.FindByTestAndStudent(testID, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No attempt for this test")
		}
		return nil, err
	}
	return s.assemble(test, attempt)
}

func (s *attemptStateService) assemble(test *model.Test, attempt *model.Attempt) (*dto.AttemptStateResponse, error) {
	answers, err := s.answerRepo.FindByAttemptID(attempt.ID)
	if err != nil {
		return nil, err
	}

	saved := make(map[uint]string, len(answers))
	for _, a := range answers {
		saved[a.QuestionID] = a.AnswerText
	}

	questions := make([]dto.SanitizedQuestionResponse, len(test.Questions))
	for i, q := range test.Questions {
		var sq dto.SanitizedQuestionResponse
		copier.Copy(&sq, &q)
		sq.Marks = grading.EffectiveMarks(q.Marks)
		questions[i] = sq
	}

	return &dto.AttemptStateResponse{
		AttemptID:          attempt.ID,
		TestID:             test.ID,
		TestTitle:          test.Title,
		AttemptNumber:      attempt.AttemptNumber,
		Completed:          attempt.Completed,
		StartedAt:          attempt.StartedAt,
		SubmittedAt:        attempt.SubmittedAt,
		ProctoringRequired: test.ProctoringRequired,
		DurationMinutes:    test.DurationMinutes,
		MaxViolations:      test.MaxViolations,
		Questions:          questions,
		SavedAnswers:       saved,
	}, nil
}
