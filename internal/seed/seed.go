// Package seed loads test definitions from YAML files for the seed command.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/questree/internal/dto"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// File is the top-level document:
//
//	tests:
//	  - title: Pets
//	    questions:
//	      - text: Do you have a pet?
//	        choices:
//	          - text: "Yes"
//	            followup:
//	              text: Which one?
//	              choices: [{text: Cat}, {text: Dog}]
//	          - text: "No"
type File struct {
	Tests []dto.TestCreateDTO `yaml:"tests" binding:"required,min=1,dive"`
}

// Creator is satisfied by service.AdminTestService.
type Creator interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
}

var validate = newValidator()

// The binding tags are shared with gin so one set of rules covers both the
// HTTP API and seed files.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Apply creates every test of the file in order and returns the new test ids.
func Apply(ctx context.Context, creator Creator, f *File) ([]uint, error) {
	ids := make([]uint, 0, len(f.Tests))
	for _, def := range f.Tests {
		created, err := creator.CreateTest(ctx, def)
		if err != nil {
			return ids, fmt.Errorf("seed test %q: %w", def.Title, err)
		}
		log.Info().Uint("testID", created.ID).Str("title", created.Title).Int("questions", len(created.Questions)).Msg("Seeded test")
		ids = append(ids, created.ID)
	}
	return ids, nil
}
