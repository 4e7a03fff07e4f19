package service

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/dto"
	"github.com/bkit-solutions/LMS-sub000/internal/grading"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"github.com/bkit-solutions/LMS-sub000/internal/repository"
)

// AttemptService is the attempt state machine. All mutations run inside a
// request-scoped transaction; the (test, student) row is the serialization
// point for concurrent starts.
type AttemptService interface {
	StartAttempt(principal *auth.Principal, testID uint) (*dto.AttemptResponse, error)
	SubmitAnswer(principal *auth.Principal, attemptID uint, req dto.SubmitAnswerRequest) error
	SubmitAttempt(principal *auth.Principal, attemptID uint) (*dto.AttemptResponse, error)
	GetAttempt(principal *auth.Principal, attemptID uint) (*dto.AttemptResponse, error)
	GetLatestAttempt(principal *auth.Principal, testID uint, onlyIncomplete bool) (*dto.AttemptResponse, error)
}

type attemptService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	policy       PolicyGate
	db           *gorm.DB
}

func NewAttemptService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	policy PolicyGate,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		policy:       policy,
		db:           db,
	}
}

// StartAttempt creates the attempt row on first start, or bumps its number
// in place on a re-start. The bump retains the previous cycle's score and
// answers; only the completion markers reset.
func (s *attemptService) StartAttempt(principal *auth.Principal, testID uint) (*dto.AttemptResponse, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Test not found")
		}
		return nil, err
	}
	if err := s.policy.CheckWindow(test, principal); err != nil {
		return nil, err
	}

	var attempt *model.Attempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.attemptRepo.WithTx(tx)

		existing, err := repo.FindByTestAndStudentForUpdate(testID, principal.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			attempt = &model.Attempt{
				TestID:        testID,
				StudentID:     principal.UserID,
				AttemptNumber: 1,
				StartedAt:     time.Now(),
				Completed:     false,
				Score:         0,
			}
			if createErr := repo.Create(attempt); createErr != nil {
				if errors.Is(createErr, gorm.ErrDuplicatedKey) {
					return apperror.Conflict("Attempt is already being started")
				}
				return createErr
			}
			return nil
		}
		if err != nil {
			return err
		}

		maxAttempts := grading.EffectiveMaxAttempts(test.MaxAttempts)
		if existing.AttemptNumber >= maxAttempts {
			return apperror.BadRequest("Max attempts reached")
		}

		// In-place bump: score and answers from the prior cycle stay on
		// the row until explicitly overwritten.
		existing.AttemptNumber++
		existing.Completed = false
		existing.SubmittedAt = nil
		existing.StartedAt = time.Now()
		if updateErr := repo.Update(existing); updateErr != nil {
			return updateErr
		}
		attempt = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("testID", testID).
		Uint("studentID", principal.UserID).
		Int("attemptNumber", attempt.AttemptNumber).
		Msg("Attempt started")

	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	return &resp, nil
}

// SubmitAnswer evaluates correctness and upserts the answer row for the
// (attempt, question) pair. The window is re-checked on every call, so a
// submission after the window closes fails even for a validly started
// attempt.
func (s *attemptService) SubmitAnswer(principal *auth.Principal, attemptID uint, req dto.SubmitAnswerRequest) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Attempt not found")
		}
		return err
	}
	if attempt.StudentID != principal.UserID {
		return apperror.Forbidden("Attempt belongs to another student")
	}
	if attempt.Completed {
		return apperror.BadRequest("Attempt already completed")
	}

	test, err := s.testRepo.FindByID(attempt.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Test not found")
		}
		return err
	}
	if err := s.policy.CheckWindow(test, principal); err != nil {
		return err
	}

	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Question not found")
		}
		return err
	}
	if question.TestID != attempt.TestID {
		return apperror.BadRequest("Question does not belong to the attempt's test")
	}

	answer := &model.Answer{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		AnswerText: req.AnswerText,
		Correct:    grading.Evaluate(question, req.AnswerText),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if upsertErr := s.answerRepo.WithTx(tx).Upsert(answer); upsertErr != nil {
			if errors.Is(upsertErr, gorm.ErrDuplicatedKey) {
				return apperror.Conflict("Answer is being submitted concurrently")
			}
			return upsertErr
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("questionID", question.ID).
		Bool("correct", answer.Correct).
		Msg("Answer recorded")
	return nil
}

// SubmitAttempt finalizes the attempt: scores the persisted answers and
// stamps completion. Re-submitting a completed attempt is a no-op returning
// the stored result.
func (s *attemptService) SubmitAttempt(principal *auth.Principal, attemptID uint) (*dto.AttemptResponse, error) {
	var attempt *model.Attempt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.attemptRepo.WithTx(tx)

		found, err := repo.FindByIDForUpdate(attemptID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Attempt not found")
		}
		if err != nil {
			return err
		}
		if found.StudentID != principal.UserID {
			return apperror.Forbidden("Attempt belongs to another student")
		}
		if found.Completed {
			attempt = found
			return nil
		}

		answers, err := s.answerRepo.WithTx(tx).FindByAttemptID(found.ID)
		if err != nil {
			return err
		}
		questions, err := s.questionRepo.FindByTestID(found.TestID)
		if err != nil {
			return err
		}
		questionsByID := make(map[uint]model.Question, len(questions))
		for _, q := range questions {
			questionsByID[q.ID] = q
		}

		now := time.Now()
		found.Score = grading.Score(answers, questionsByID)
		found.SubmittedAt = &now
		found.Completed = true
		if err := repo.Update(found); err != nil {
			return err
		}
		attempt = found

		log.Info().
			Uint("attemptID", found.ID).
			Int("score", found.Score).
			Int("answerCount", len(answers)).
			Msg("Attempt submitted")
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	return &resp, nil
}

func (s *attemptService) GetAttempt(principal *auth.Principal, attemptID uint) (*dto.AttemptResponse, error) {
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
	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	return &resp, nil
}

// GetLatestAttempt resolves the caller's current attempt row for a test,
// optionally only when it is still incomplete.
func (s *attemptService) GetLatestAttempt(principal *auth.Principal, testID uint, onlyIncomplete bool) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByTestAndStudent(testID, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("No attempt for this test")
		}
		return nil, err
	}
	if onlyIncomplete && attempt.Completed {
		return nil, apperror.NotFound("No incomplete attempt for this test")
	}
	var resp dto.AttemptResponse
	copier.Copy(&resp, attempt)
	return &resp, nil
}
