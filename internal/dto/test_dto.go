package dto

import "time"

type ChoiceDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionDTO is used for displaying a question with its choices.
// ParentChoiceID is empty for root questions.
type QuestionDTO struct {
	ID             uint        `json:"id"`
	TestID         uint        `json:"test_id"`
	ParentChoiceID *uint       `json:"parent_choice_id,omitempty"`
	Text           string      `json:"text"`
	Choices        []ChoiceDTO `json:"choices"`
}

// TestResponseDTO is used for displaying a test with every question of its
// tree, root and follow-up alike, ordered by id.
type TestResponseDTO struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []QuestionDTO `json:"questions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// FirstQuestionDTO has no QuestionID when the test has no questions.
type FirstQuestionDTO struct {
	TestID     uint  `json:"test_id"`
	QuestionID *uint `json:"question_id"`
}
