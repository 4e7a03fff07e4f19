package service

import (
	"errors"

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

// QuestionService owns question authoring. Every write re-derives the parent
// test's total marks; TotalMarks is never authored directly.
type QuestionService interface {
	AddQuestion(principal *auth.Principal, testID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(principal *auth.Principal, questionID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(principal *auth.Principal, questionID uint) error
	ListQuestions(principal *auth.Principal, testID uint) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	testRepo     repository.TestRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, testRepo repository.TestRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, testRepo: testRepo}
}

func (s *questionService) AddQuestion(principal *auth.Principal, testID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.findOwnedTest(principal, testID); err != nil {
		return nil, err
	}

	question := model.Question{TestID: testID}
	copier.Copy(&question, &req)
	question.TestID = testID
	if err := grading.ValidateQuestion(&question); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create question")
		return nil, err
	}
	if err := s.recomputeTotalMarks(testID); err != nil {
		return nil, err
	}

	var resp dto.QuestionResponse
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) UpdateQuestion(principal *auth.Principal, questionID uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Question not found")
		}
		return nil, err
	}
	if _, err := s.findOwnedTest(principal, question.TestID); err != nil {
		return nil, err
	}

	question.Type = req.Type
	question.Text = req.Text
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectOption = req.CorrectOption
	question.CorrectOptions = req.CorrectOptions
	question.CorrectAnswer = req.CorrectAnswer
	question.Marks = req.Marks
	question.NegativeMarks = req.NegativeMarks

	if err := grading.ValidateQuestion(question); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	if err := s.recomputeTotalMarks(question.TestID); err != nil {
		return nil, err
	}

	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(principal *auth.Principal, questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Question not found")
		}
		return err
	}
	if _, err := s.findOwnedTest(principal, question.TestID); err != nil {
		return err
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		return err
	}
	return s.recomputeTotalMarks(question.TestID)
}

func (s *questionService) ListQuestions(principal *auth.Principal, testID uint) ([]dto.QuestionResponse, error) {
	if _, err := s.findOwnedTest(principal, testID); err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	copier.Copy(&resp, &questions)
	return resp, nil
}

func (s *questionService) findOwnedTest(principal *auth.Principal, testID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(testID)
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

func (s *questionService) recomputeTotalMarks(testID uint) error {
	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return err
	}
	return s.testRepo.UpdateTotalMarks(testID, grading.TotalMarks(questions))
}
