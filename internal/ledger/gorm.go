package ledger

import (
	"context"
	"fmt"

	"github.com/lshigami/questree/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) PutAnswer(ctx context.Context, session string, testID, questionID, choiceID uint) error {
	entry := model.LedgerEntry{
		SessionID:  session,
		TestID:     testID,
		QuestionID: questionID,
		ChoiceID:   choiceID,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "test_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"choice_id", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert ledger entry for session %s: %w", session, err)
	}
	return nil
}

func (s *GormStore) GetAnswers(ctx context.Context, session string, testID uint) (Answers, error) {
	var entries []model.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND test_id = ?", session, testID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load ledger for session %s: %w", session, err)
	}
	answers := make(Answers, 0, len(entries))
	for _, e := range entries {
		answers = append(answers, Entry{QuestionID: e.QuestionID, ChoiceID: e.ChoiceID})
	}
	return answers, nil
}

func (s *GormStore) Clear(ctx context.Context, session string, testID uint) error {
	return s.db.WithContext(ctx).
		Where("session_id = ? AND test_id = ?", session, testID).
		Delete(&model.LedgerEntry{}).Error
}
