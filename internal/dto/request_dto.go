package dto

// SubmitAnswerRequest carries the selected choice. A missing choice_id is
// accepted by binding and reported as an invalid choice by the service.
type SubmitAnswerRequest struct {
	ChoiceID *uint `json:"choice_id"`
}
