package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/questree/config"
	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/navigation"
	"github.com/lshigami/questree/internal/repository"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	AddQuestion(ctx context.Context, testID uint, req dto.AddQuestionRequest) (*dto.QuestionDTO, error)
	DeleteQuestion(ctx context.Context, id uint) (*dto.DeleteQuestionResponse, error)
}

type questionService struct {
	repo     repository.QuestionRepository
	testRepo repository.TestRepository
	trees    TreeService
	maxDepth int
}

func NewQuestionService(repo repository.QuestionRepository, testRepo repository.TestRepository, trees TreeService, cfg *config.Config) QuestionService {
	maxDepth := cfg.Tree.MaxBranchDepth
	if maxDepth <= 0 {
		maxDepth = navigation.DefaultMaxDepth
	}
	return &questionService{repo: repo, testRepo: testRepo, trees: trees, maxDepth: maxDepth}
}

// AddQuestion appends a root question, or attaches a follow-up to a choice of
// the same test. A choice already owning a follow-up is a conflict.
func (s *questionService) AddQuestion(ctx context.Context, testID uint, req dto.AddQuestionRequest) (*dto.QuestionDTO, error) {
	if _, err := s.testRepo.FindByID(ctx, testID); err != nil {
		return nil, err
	}
	if req.ParentChoiceID != nil {
		if err := s.checkParentChoice(ctx, testID, *req.ParentChoiceID); err != nil {
			log.Warn().Err(err).Uint("testID", testID).Uint("parentChoiceID", *req.ParentChoiceID).Msg("Rejected follow-up question")
			return nil, err
		}
	}

	question := model.Question{TestID: testID, ParentChoiceID: req.ParentChoiceID, Text: req.Text}
	for _, c := range req.Choices {
		if c.Followup != nil {
			return nil, fmt.Errorf("nested follow-ups are only accepted when creating a test: %w", apperr.ErrInvalidInput)
		}
		question.Choices = append(question.Choices, model.Choice{Text: c.Text})
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	s.trees.Invalidate(ctx, testID)
	log.Info().Uint("testID", testID).Uint("questionID", question.ID).Bool("followup", !question.IsRoot()).Msg("Question added")

	resp, err := toQuestionDTO(&question)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *questionService) checkParentChoice(ctx context.Context, testID, choiceID uint) error {
	choice, err := s.repo.FindChoiceByID(ctx, choiceID)
	if errors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("parent choice %d does not exist: %w", choiceID, apperr.ErrInvalidInput)
	}
	if err != nil {
		return err
	}
	parent, err := s.repo.FindByID(ctx, choice.QuestionID)
	if err != nil {
		return err
	}
	if parent.TestID != testID {
		return fmt.Errorf("parent choice %d belongs to test %d: %w", choiceID, parent.TestID, apperr.ErrInvalidInput)
	}

	existing, err := s.repo.FindByParentChoiceID(ctx, choiceID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("choice %d already reveals question %d: %w", choiceID, existing[0].ID, apperr.ErrConflict)
	}

	tree, err := s.trees.LoadTree(ctx, testID)
	if err != nil {
		return err
	}
	depth, err := tree.Depth(parent.ID)
	if err != nil {
		return err
	}
	if depth+1 > s.maxDepth {
		return fmt.Errorf("branch depth %d exceeds the limit of %d: %w", depth+1, s.maxDepth, apperr.ErrInvalidInput)
	}
	return nil
}

// DeleteQuestion removes the question together with every follow-up below it.
func (s *questionService) DeleteQuestion(ctx context.Context, id uint) (*dto.DeleteQuestionResponse, error) {
	question, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deleted, err := s.repo.DeleteSubtree(ctx, id)
	if err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question subtree")
		return nil, err
	}
	s.trees.Invalidate(ctx, question.TestID)
	log.Info().Uint("questionID", id).Int("deleted", deleted).Msg("Question subtree deleted")
	return &dto.DeleteQuestionResponse{QuestionID: id, DeletedQuestions: deleted}, nil
}
