package model

import (
	"time"
)

const (
	SessionStatusAwaitingAnswer = "awaiting_answer"
	SessionStatusComplete       = "complete"
)

// TestSession tracks one test-taker's pass through a test. It has no FK to
// tests so that a deleted test leaves its sessions (and their ledgers) readable.
type TestSession struct {
	ID                string     `gorm:"primarykey;size:36" json:"id"`
	TestID            uint       `json:"test_id" gorm:"not null;index"`
	Status            string     `json:"status" gorm:"size:32;not null;default:'awaiting_answer'"`
	CurrentQuestionID *uint      `json:"current_question_id,omitempty"`
	StartedAt         time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (s *TestSession) IsComplete() bool {
	return s.Status == SessionStatusComplete
}
