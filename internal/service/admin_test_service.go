package service

import (
	"context"
	"fmt"

	"github.com/lshigami/questree/config"
	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/navigation"
	"github.com/lshigami/questree/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	DeleteTest(ctx context.Context, testID uint) error
}

type adminTestService struct {
	testRepo repository.TestRepository
	trees    TreeService
	db       *gorm.DB
	maxDepth int
}

func NewAdminTestService(testRepo repository.TestRepository, trees TreeService, db *gorm.DB, cfg *config.Config) AdminTestService {
	maxDepth := cfg.Tree.MaxBranchDepth
	if maxDepth <= 0 {
		maxDepth = navigation.DefaultMaxDepth
	}
	return &adminTestService{testRepo: testRepo, trees: trees, db: db, maxDepth: maxDepth}
}

// pendingQuestion is a follow-up waiting for its owning choice to get an id.
type pendingQuestion struct {
	parentChoiceID uint
	depth          int
	def            dto.QuestionCreateDTO
}

// CreateTest inserts the test and its whole tree in one transaction. Root
// questions are inserted first in listed order, then follow-ups breadth-first,
// so every follow-up gets a larger id than the question owning its choice.
func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if depth := definitionDepth(req.Questions); depth > s.maxDepth {
		return nil, fmt.Errorf("branch depth %d exceeds the limit of %d: %w", depth, s.maxDepth, apperr.ErrInvalidInput)
	}

	testModel := model.Test{Title: req.Title, Description: req.Description}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&testModel).Error; err != nil {
			return fmt.Errorf("create test: %w", err)
		}

		var queue []pendingQuestion
		insert := func(def dto.QuestionCreateDTO, parent *uint, depth int) error {
			question := model.Question{TestID: testModel.ID, ParentChoiceID: parent, Text: def.Text}
			for _, c := range def.Choices {
				question.Choices = append(question.Choices, model.Choice{Text: c.Text})
			}
			if err := tx.Create(&question).Error; err != nil {
				return fmt.Errorf("create question %q: %w", def.Text, err)
			}
			for i, c := range def.Choices {
				if c.Followup != nil {
					queue = append(queue, pendingQuestion{parentChoiceID: question.Choices[i].ID, depth: depth + 1, def: *c.Followup})
				}
			}
			return nil
		}

		for _, def := range req.Questions {
			if err := insert(def, nil, 0); err != nil {
				return err
			}
		}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			parent := next.parentChoiceID
			if err := insert(next.def, &parent, next.depth); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Uint("testID", testModel.ID).Str("title", testModel.Title).Msg("Test created")

	created, err := s.testRepo.FindTree(ctx, testModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testModel.ID).Msg("Failed to retrieve newly created test for response")
		return nil, err
	}
	return toTestDTO(created)
}

// DeleteTest removes the test with all of its questions and choices. Sessions
// and their ledgers are left alone; their results skip the vanished rows.
func (s *adminTestService) DeleteTest(ctx context.Context, testID uint) error {
	if err := s.testRepo.Delete(ctx, testID); err != nil {
		return err
	}
	s.trees.Invalidate(ctx, testID)
	log.Info().Uint("testID", testID).Msg("Test deleted")
	return nil
}

// definitionDepth is the deepest follow-up level in a nested definition, 0
// when there are no follow-ups.
func definitionDepth(questions []dto.QuestionCreateDTO) int {
	deepest := 0
	for _, q := range questions {
		for _, c := range q.Choices {
			if c.Followup == nil {
				continue
			}
			if d := 1 + definitionDepth([]dto.QuestionCreateDTO{*c.Followup}); d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}
