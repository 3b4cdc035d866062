package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/questree/internal/model"
	"gorm.io/gorm"
)

type TestSessionRepository interface {
	Create(ctx context.Context, session *model.TestSession) error
	Update(ctx context.Context, session *model.TestSession) error
	FindByID(ctx context.Context, id string) (*model.TestSession, error)
}

type testSessionRepository struct {
	db *gorm.DB
}

func NewTestSessionRepository(db *gorm.DB) TestSessionRepository {
	return &testSessionRepository{db: db}
}

func (r *testSessionRepository) Create(ctx context.Context, session *model.TestSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *testSessionRepository) Update(ctx context.Context, session *model.TestSession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("update session %s: %w", session.ID, err)
	}
	return nil
}

func (r *testSessionRepository) FindByID(ctx context.Context, id string) (*model.TestSession, error) {
	var session model.TestSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err, "session", id)
	}
	return &session, nil
}
