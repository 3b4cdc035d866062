package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// InvalidChoiceResponse re-presents the question that was submitted without a
// valid choice.
type InvalidChoiceResponse struct {
	Message  string      `json:"message"`
	Question QuestionDTO `json:"question"`
}

type SessionDTO struct {
	ID                string     `json:"id"`
	TestID            uint       `json:"test_id"`
	Status            string     `json:"status"`
	CurrentQuestionID *uint      `json:"current_question_id,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// SubmitResultDTO tells the client where to go after an accepted answer.
// Outcome is "next" or "complete"; NextQuestionID is set only for "next".
type SubmitResultDTO struct {
	Outcome        string     `json:"outcome"`
	NextQuestionID *uint      `json:"next_question_id,omitempty"`
	Followup       bool       `json:"followup"`
	Session        SessionDTO `json:"session"`
}

type AnswerResultDTO struct {
	QuestionID   uint   `json:"question_id"`
	QuestionText string `json:"question_text"`
	ChoiceID     uint   `json:"choice_id"`
	ChoiceText   string `json:"choice_text"`
}

// ResultsDTO lists a completed session's answers in the order they were first given.
type ResultsDTO struct {
	SessionID string            `json:"session_id"`
	TestID    uint              `json:"test_id"`
	TestTitle string            `json:"test_title"`
	Answers   []AnswerResultDTO `json:"answers"`
}
