package repository

import (
	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	Update(test *model.Test) error
	Delete(id uint) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindAllByCreator(creatorID uint) ([]model.Test, error)
	UpdateTotalMarks(id uint, totalMarks int) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// Create with associations also persists any populated Questions.
	return r.db.Create(test).Error
}

func (r *testRepository) Update(test *model.Test) error {
	return r.db.Save(test).Error
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Delete(&model.Test{}, id).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAllByCreator(creatorID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Where("created_by = ?", creatorID).Order("created_at DESC").Find(&tests).Error
	return tests, err
}

// UpdateTotalMarks writes only the derived column, leaving authored fields
// alone.
func (r *testRepository) UpdateTotalMarks(id uint, totalMarks int) error {
	return r.db.Model(&model.Test{}).Where("id = ?", id).Update("total_marks", totalMarks).Error
}
