package dto

// ChoiceCreateDTO is one choice inside a nested admin test definition. A
// Followup is the question revealed when this choice is selected.
type ChoiceCreateDTO struct {
	Text     string             `json:"text" yaml:"text" binding:"required,max=200"`
	Followup *QuestionCreateDTO `json:"followup,omitempty" yaml:"followup,omitempty"`
}

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Text    string            `json:"text" yaml:"text" binding:"required,max=200"`
	Choices []ChoiceCreateDTO `json:"choices" yaml:"choices" binding:"omitempty,dive"`
}

// TestCreateDTO is for admin to create a new test with its whole question tree.
// Questions listed at the top level become root questions in the order given.
type TestCreateDTO struct {
	Title       string              `json:"title" yaml:"title" binding:"required,max=200"`
	Description string              `json:"description,omitempty" yaml:"description" binding:"max=200"`
	Questions   []QuestionCreateDTO `json:"questions" yaml:"questions" binding:"omitempty,dive"`
}

// AddQuestionRequest adds a single question to an existing test. Without a
// parent_choice_id the question is appended as the last root question.
type AddQuestionRequest struct {
	ParentChoiceID *uint             `json:"parent_choice_id"`
	Text           string            `json:"text" binding:"required,max=200"`
	Choices        []ChoiceCreateDTO `json:"choices" binding:"omitempty,dive"`
}

type DeleteQuestionResponse struct {
	QuestionID       uint `json:"question_id"`
	DeletedQuestions int  `json:"deleted_questions"`
}
