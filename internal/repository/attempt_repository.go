package repository

import (
	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	// WithTx rebinds the repository to a transaction so the state machine
	// can run lookups and writes atomically.
	WithTx(tx *gorm.DB) AttemptRepository

	Create(attempt *model.Attempt) error
	Update(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDForUpdate(id uint) (*model.Attempt, error)
	// FindByTestAndStudent resolves the single row for the pair; the
	// forUpdate variant takes a row lock so concurrent start calls
	// serialize on it.
	FindByTestAndStudent(testID, studentID uint) (*model.Attempt, error)
	FindByTestAndStudentForUpdate(testID, studentID uint) (*model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// locked applies a row lock on dialects that support it. SQLite (tests) has
// no FOR UPDATE; its single-writer model serializes transactions anyway.
func (r *attemptRepository) locked() *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return r.db
	}
	return r.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *attemptRepository) FindByIDForUpdate(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.locked().First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByTestAndStudent(testID, studentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("test_id = ? AND student_id = ?", testID, studentID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByTestAndStudentForUpdate(testID, studentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.locked().
		Where("test_id = ? AND student_id = ?", testID, studentID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
