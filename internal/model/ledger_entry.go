package model

import (
	"time"
)

// LedgerEntry is one recorded answer of the postgres-backed session ledger.
// The unique key makes re-answering a question an upsert.
type LedgerEntry struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  string    `json:"session_id" gorm:"size:64;not null;uniqueIndex:idx_ledger_key,priority:1"`
	TestID     uint      `json:"test_id" gorm:"not null;uniqueIndex:idx_ledger_key,priority:2"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_ledger_key,priority:3"`
	ChoiceID   uint      `json:"choice_id" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
