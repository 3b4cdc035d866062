package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindByTestID(ctx context.Context, testID uint) ([]model.Question, error)
	FindChoiceByID(ctx context.Context, id uint) (*model.Choice, error)
	FindChoicesByQuestionID(ctx context.Context, questionID uint) ([]model.Choice, error)
	// FindByParentChoiceID returns every follow-up owned by the choice, lowest id first.
	FindByParentChoiceID(ctx context.Context, choiceID uint) ([]model.Question, error)
	// DeleteSubtree removes the question, its choices and every follow-up below them.
	DeleteSubtree(ctx context.Context, id uint) (int, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") }).
		First(&question, id).Error
	if err != nil {
		return nil, wrapNotFound(err, "question", id)
	}
	return &question, nil
}

func (r *questionRepository) FindByTestID(ctx context.Context, testID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("test_id = ?", testID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("questions of test %d: %w", testID, err)
	}
	return questions, nil
}

func (r *questionRepository) FindChoiceByID(ctx context.Context, id uint) (*model.Choice, error) {
	var choice model.Choice
	if err := r.db.WithContext(ctx).First(&choice, id).Error; err != nil {
		return nil, wrapNotFound(err, "choice", id)
	}
	return &choice, nil
}

func (r *questionRepository) FindChoicesByQuestionID(ctx context.Context, questionID uint) ([]model.Choice, error) {
	var choices []model.Choice
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id ASC").Find(&choices).Error; err != nil {
		return nil, fmt.Errorf("choices of question %d: %w", questionID, err)
	}
	return choices, nil
}

func (r *questionRepository) FindByParentChoiceID(ctx context.Context, choiceID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("parent_choice_id = ?", choiceID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("follow-ups of choice %d: %w", choiceID, err)
	}
	return questions, nil
}

func (r *questionRepository) DeleteSubtree(ctx context.Context, id uint) (int, error) {
	var deleted int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root model.Question
		if err := tx.First(&root, id).Error; err != nil {
			return wrapNotFound(err, "question", id)
		}

		ids := []uint{id}
		seen := map[uint]bool{id: true}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var choiceIDs []uint
			if err := tx.Model(&model.Choice{}).Where("question_id IN ?", frontier).Pluck("id", &choiceIDs).Error; err != nil {
				return fmt.Errorf("collect choices: %w", err)
			}
			if len(choiceIDs) == 0 {
				break
			}
			var children []uint
			if err := tx.Model(&model.Question{}).Where("parent_choice_id IN ?", choiceIDs).Pluck("id", &children).Error; err != nil {
				return fmt.Errorf("collect follow-ups: %w", err)
			}
			for _, child := range children {
				if seen[child] {
					return fmt.Errorf("question %d reached twice below question %d, parent chain has a cycle: %w", child, id, apperr.ErrDataIntegrity)
				}
				seen[child] = true
			}
			ids = append(ids, children...)
			frontier = children
		}

		if err := tx.Where("question_id IN ?", ids).Delete(&model.Choice{}).Error; err != nil {
			return fmt.Errorf("delete choices: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&model.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		deleted = len(ids)
		return nil
	})
	return deleted, err
}
