package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lshigami/questree/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petsYAML = `
tests:
  - title: Pets
    description: A short branching survey
    questions:
      - text: Do you have a pet?
        choices:
          - text: "Yes"
            followup:
              text: Which one?
              choices: [{text: Cat}, {text: Dog}]
          - text: "No"
      - text: Do you like walks?
        choices: [{text: "Yes"}, {text: "No"}]
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(petsYAML))
	require.NoError(t, err)
	require.Len(t, f.Tests, 1)

	pets := f.Tests[0]
	assert.Equal(t, "Pets", pets.Title)
	require.Len(t, pets.Questions, 2)
	first := pets.Questions[0]
	require.Len(t, first.Choices, 2)
	require.NotNil(t, first.Choices[0].Followup)
	assert.Equal(t, "Which one?", first.Choices[0].Followup.Text)
	assert.Len(t, first.Choices[0].Followup.Choices, 2)
	assert.Nil(t, first.Choices[1].Followup)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no tests", "tests: []\n"},
		{"missing title", "tests:\n  - questions: []\n"},
		{"empty choice text", "tests:\n  - title: T\n    questions:\n      - text: Q\n        choices: [{text: \"\"}]\n"},
		{"nested followup without text", "tests:\n  - title: T\n    questions:\n      - text: Q\n        choices:\n          - text: A\n            followup: {choices: []}\n"},
		{"unknown field", "tests:\n  - title: T\n    order: 3\n"},
		{"title too long", "tests:\n  - title: " + strings.Repeat("x", 201) + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

type recordingCreator struct {
	titles []string
	failOn string
}

func (r *recordingCreator) CreateTest(_ context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if req.Title == r.failOn {
		return nil, errors.New("boom")
	}
	r.titles = append(r.titles, req.Title)
	return &dto.TestResponseDTO{ID: uint(len(r.titles)), Title: req.Title}, nil
}

func TestApply(t *testing.T) {
	f := &File{Tests: []dto.TestCreateDTO{{Title: "A"}, {Title: "B"}, {Title: "C"}}}

	creator := &recordingCreator{}
	ids, err := Apply(context.Background(), creator, f)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)
	assert.Equal(t, []string{"A", "B", "C"}, creator.titles)

	failing := &recordingCreator{failOn: "B"}
	ids, err = Apply(context.Background(), failing, f)
	assert.ErrorContains(t, err, `seed test "B"`)
	assert.Equal(t, []uint{1}, ids)
}
