// Package flow drives one submission at a time through the navigation engine
// and the session ledger. It owns no request state: the caller passes the
// session id and the ledger is injected at construction.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/ledger"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/navigation"
	"github.com/rs/zerolog/log"
)

type TreeLoader interface {
	LoadTree(ctx context.Context, testID uint) (*navigation.Tree, error)
}

// Catalog resolves ids back into live rows. Missing rows must be reported
// with apperr.ErrNotFound.
type Catalog interface {
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	FindChoiceByID(ctx context.Context, id uint) (*model.Choice, error)
}

type OutcomeKind int

const (
	OutcomeNext OutcomeKind = iota
	OutcomeComplete
	OutcomeInvalidChoice
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNext:
		return "next"
	case OutcomeComplete:
		return "complete"
	case OutcomeInvalidChoice:
		return "invalid_choice"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is where a submission leads. QuestionID is the destination for
// OutcomeNext and the unchanged current question for OutcomeInvalidChoice.
type Outcome struct {
	Kind       OutcomeKind
	TestID     uint
	QuestionID uint
	Followup   bool
}

type Result struct {
	Question model.Question
	Choice   model.Choice
}

type Controller struct {
	trees   TreeLoader
	catalog Catalog
	ledger  ledger.Store
}

func NewController(trees TreeLoader, catalog Catalog, store ledger.Store) *Controller {
	return &Controller{trees: trees, catalog: catalog, ledger: store}
}

// FirstQuestion returns the first root question of the test; ok is false for
// a test without questions.
func (c *Controller) FirstQuestion(ctx context.Context, testID uint) (uint, bool, error) {
	tree, err := c.trees.LoadTree(ctx, testID)
	if err != nil {
		return 0, false, err
	}
	id, ok := tree.FirstQuestion()
	return id, ok, nil
}

// Submit records choiceID as the answer to questionID and returns the next
// destination. A missing choice, or one that does not belong to the question,
// yields OutcomeInvalidChoice and leaves the ledger untouched.
func (c *Controller) Submit(ctx context.Context, session string, testID, questionID uint, choiceID *uint) (Outcome, error) {
	tree, err := c.trees.LoadTree(ctx, testID)
	if err != nil {
		return Outcome{}, err
	}
	if _, ok := tree.Question(questionID); !ok {
		return Outcome{}, fmt.Errorf("question %d in test %d: %w", questionID, testID, apperr.ErrNotFound)
	}

	if choiceID == nil || !tree.HasChoice(questionID, *choiceID) {
		log.Info().Str("session", session).Uint("testID", testID).Uint("questionID", questionID).Msg("Submission without a valid choice")
		return Outcome{Kind: OutcomeInvalidChoice, TestID: testID, QuestionID: questionID}, nil
	}

	if err := c.ledger.PutAnswer(ctx, session, testID, questionID, *choiceID); err != nil {
		return Outcome{}, fmt.Errorf("record answer: %w", err)
	}

	followup, ok, err := tree.FollowupQuestion(*choiceID)
	if err != nil {
		return Outcome{}, err
	}
	if ok {
		return Outcome{Kind: OutcomeNext, TestID: testID, QuestionID: followup, Followup: true}, nil
	}

	next, ok, err := tree.NextQuestion(questionID)
	if err != nil {
		return Outcome{}, err
	}
	if ok {
		return Outcome{Kind: OutcomeNext, TestID: testID, QuestionID: next}, nil
	}
	return Outcome{Kind: OutcomeComplete, TestID: testID}, nil
}

// Results resolves the session's answers in the order they were first given.
// Entries whose question or choice has since been deleted are skipped.
func (c *Controller) Results(ctx context.Context, session string, testID uint) ([]Result, error) {
	answers, err := c.ledger.GetAnswers(ctx, session, testID)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}

	results := make([]Result, 0, len(answers))
	for _, a := range answers {
		question, err := c.catalog.FindByID(ctx, a.QuestionID)
		if errors.Is(err, apperr.ErrNotFound) {
			log.Debug().Str("session", session).Uint("questionID", a.QuestionID).Msg("Skipping answer to a deleted question")
			continue
		}
		if err != nil {
			return nil, err
		}
		if question.TestID != testID {
			log.Debug().Str("session", session).Uint("questionID", a.QuestionID).Msg("Skipping answer to a question of another test")
			continue
		}

		choice, err := c.catalog.FindChoiceByID(ctx, a.ChoiceID)
		if errors.Is(err, apperr.ErrNotFound) {
			log.Debug().Str("session", session).Uint("choiceID", a.ChoiceID).Msg("Skipping answer with a deleted choice")
			continue
		}
		if err != nil {
			return nil, err
		}
		if choice.QuestionID != question.ID {
			log.Debug().Str("session", session).Uint("choiceID", a.ChoiceID).Uint("questionID", question.ID).Msg("Skipping answer with a choice of another question")
			continue
		}
		results = append(results, Result{Question: *question, Choice: *choice})
	}
	return results, nil
}
