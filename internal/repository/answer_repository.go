package repository

import (
	"errors"

	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository

	// Upsert inserts the answer or, when the (attempt, question) pair
	// already holds one, overwrites its text and correctness.
	Upsert(answer *model.Answer) error
	FindByAttemptID(attemptID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Upsert(answer *model.Answer) error {
	var existing model.Answer
	err := r.db.Where("attempt_id = ? AND question_id = ?", answer.AttemptID, answer.QuestionID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(answer).Error
	}
	if err != nil {
		return err
	}
	existing.AnswerText = answer.AnswerText
	existing.Correct = answer.Correct
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*answer = existing
	return nil
}

func (r *answerRepository) FindByAttemptID(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("attempt_id = ?", attemptID).Order("question_id ASC").Find(&answers).Error
	return answers, err
}
