package model

import (
	"time"
)

// Question is a root question when ParentChoiceID is nil, otherwise a follow-up
// that is only reachable by selecting that choice. The auto-increment ID is the
// creation order and therefore the sequencing key among root questions.
type Question struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	TestID         uint      `json:"test_id" gorm:"not null;index"`
	ParentChoiceID *uint     `json:"parent_choice_id,omitempty" gorm:"index"`
	Text           string    `json:"text" gorm:"size:200;not null"`
	Choices        []Choice  `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (q *Question) IsRoot() bool {
	return q.ParentChoiceID == nil
}
