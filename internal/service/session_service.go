package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/flow"
	"github.com/lshigami/questree/internal/ledger"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/repository"
	"github.com/rs/zerolog/log"
)

const InvalidChoiceMessage = "You didn't select a choice."

// InvalidChoiceError carries the question to show again. It matches
// apperr.ErrInvalidChoice.
type InvalidChoiceError struct {
	Question dto.QuestionDTO
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Question.ID, apperr.ErrInvalidChoice)
}

func (e *InvalidChoiceError) Unwrap() error { return apperr.ErrInvalidChoice }

// SessionService persists the per-session state machine around the flow
// controller: awaiting an answer to a question, or complete.
type SessionService interface {
	StartSession(ctx context.Context, testID uint) (*dto.SessionDTO, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionDTO, error)
	GetQuestion(ctx context.Context, sessionID string, questionID uint) (*dto.QuestionDTO, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionID uint, choiceID *uint) (*dto.SubmitResultDTO, error)
	GetResults(ctx context.Context, sessionID string) (*dto.ResultsDTO, error)
}

type sessionService struct {
	sessionRepo  repository.TestSessionRepository
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	store        ledger.Store
	flow         *flow.Controller
	now          func() time.Time
}

func NewSessionService(
	sessionRepo repository.TestSessionRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	store ledger.Store,
	flowCtrl *flow.Controller,
) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		testRepo:     testRepo,
		questionRepo: questionRepo,
		store:        store,
		flow:         flowCtrl,
		now:          time.Now,
	}
}

// StartSession opens a fresh session on the first question. A test without
// questions starts complete.
func (s *sessionService) StartSession(ctx context.Context, testID uint) (*dto.SessionDTO, error) {
	first, ok, err := s.flow.FirstQuestion(ctx, testID)
	if err != nil {
		return nil, err
	}

	session := &model.TestSession{
		ID:     uuid.NewString(),
		TestID: testID,
		Status: model.SessionStatusAwaitingAnswer,
	}
	if ok {
		session.CurrentQuestionID = &first
	} else {
		completedAt := s.now()
		session.Status = model.SessionStatusComplete
		session.CompletedAt = &completedAt
	}

	if err := s.store.Clear(ctx, session.ID, testID); err != nil {
		return nil, fmt.Errorf("reset ledger: %w", err)
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to create session")
		return nil, err
	}
	log.Info().Str("session", session.ID).Uint("testID", testID).Str("status", session.Status).Msg("Session started")

	resp := toSessionDTO(session)
	return &resp, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*dto.SessionDTO, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := toSessionDTO(session)
	return &resp, nil
}

func (s *sessionService) GetQuestion(ctx context.Context, sessionID string, questionID uint) (*dto.QuestionDTO, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	question, err := s.findSessionQuestion(ctx, session, questionID)
	if err != nil {
		return nil, err
	}
	resp, err := toQuestionDTO(question)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *sessionService) findSessionQuestion(ctx context.Context, session *model.TestSession, questionID uint) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.TestID != session.TestID {
		return nil, fmt.Errorf("question %d in test %d: %w", questionID, session.TestID, apperr.ErrNotFound)
	}
	return question, nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, sessionID string, questionID uint, choiceID *uint) (*dto.SubmitResultDTO, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsComplete() {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrSessionComplete)
	}

	outcome, err := s.flow.Submit(ctx, session.ID, session.TestID, questionID, choiceID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SubmitResultDTO{Outcome: outcome.Kind.String()}
	switch outcome.Kind {
	case flow.OutcomeInvalidChoice:
		question, err := s.findSessionQuestion(ctx, session, questionID)
		if err != nil {
			return nil, err
		}
		view, err := toQuestionDTO(question)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidChoiceError{Question: view}
	case flow.OutcomeNext:
		next := outcome.QuestionID
		session.CurrentQuestionID = &next
		resp.NextQuestionID = &next
		resp.Followup = outcome.Followup
	case flow.OutcomeComplete:
		completedAt := s.now()
		session.Status = model.SessionStatusComplete
		session.CurrentQuestionID = nil
		session.CompletedAt = &completedAt
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("Failed to persist session state")
		return nil, err
	}
	resp.Session = toSessionDTO(session)
	return resp, nil
}

func (s *sessionService) GetResults(ctx context.Context, sessionID string) (*dto.ResultsDTO, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsComplete() {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrSessionIncomplete)
	}

	resp := &dto.ResultsDTO{SessionID: session.ID, TestID: session.TestID, Answers: []dto.AnswerResultDTO{}}
	test, err := s.testRepo.FindByID(ctx, session.TestID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		// every ledger entry is stale now and gets skipped below
		log.Warn().Str("session", session.ID).Uint("testID", session.TestID).Msg("Results requested for a deleted test")
	case err != nil:
		return nil, err
	default:
		resp.TestTitle = test.Title
	}

	results, err := s.flow.Results(ctx, session.ID, session.TestID)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		resp.Answers = append(resp.Answers, dto.AnswerResultDTO{
			QuestionID:   r.Question.ID,
			QuestionText: r.Question.Text,
			ChoiceID:     r.Choice.ID,
			ChoiceText:   r.Choice.Text,
		})
	}
	return resp, nil
}

func toSessionDTO(session *model.TestSession) dto.SessionDTO {
	return dto.SessionDTO{
		ID:                session.ID,
		TestID:            session.TestID,
		Status:            session.Status,
		CurrentQuestionID: session.CurrentQuestionID,
		StartedAt:         session.StartedAt,
		CompletedAt:       session.CompletedAt,
	}
}
