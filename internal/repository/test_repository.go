package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/questree/internal/model"
	"gorm.io/gorm"
)

type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id uint) (*model.Test, error)
	// FindTree loads the test with every question (root and follow-up) and
	// their choices, questions and choices ordered by id.
	FindTree(ctx context.Context, id uint) (*model.Test, error)
	FindAllWithQuestionCount(ctx context.Context) ([]TestWithQuestionCount, error)
	Delete(ctx context.Context, id uint) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) FindByID(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, id).Error; err != nil {
		return nil, wrapNotFound(err, "test", id)
	}
	return &test, nil
}

func (r *testRepository) FindTree(ctx context.Context, id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		}).
		First(&test, id).Error
	if err != nil {
		return nil, wrapNotFound(err, "test", id)
	}
	return &test, nil
}

func (r *testRepository) FindAllWithQuestionCount(ctx context.Context) ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	err := r.db.WithContext(ctx).Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id) as question_count").
		Order("tests.id ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	return results, nil
}

// Delete removes the test. Questions and choices go with it through the
// OnDelete:CASCADE constraints.
func (r *testRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Test{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete test %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "test", id)
	}
	return nil
}
