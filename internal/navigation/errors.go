package navigation

import (
	"fmt"
	"strings"

	"github.com/lshigami/questree/internal/apperr"
)

type Violation string

const (
	ViolationCycle     Violation = "cycle"
	ViolationCrossTest Violation = "cross_test"
	ViolationDangling  Violation = "dangling_reference"
	ViolationDepth     Violation = "depth_exceeded"
)

// IntegrityError is returned when the question data breaks a tree invariant.
// It matches apperr.ErrDataIntegrity with errors.Is.
type IntegrityError struct {
	Violation Violation
	Detail    string
	IDs       []uint
}

func newIntegrityError(v Violation, detail string, ids ...uint) *IntegrityError {
	return &IntegrityError{Violation: v, Detail: detail, IDs: ids}
}

func (e *IntegrityError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s: %s: %s (ids: %s)", apperr.ErrDataIntegrity, e.Violation, e.Detail, strings.Join(parts, ", "))
}

func (e *IntegrityError) Unwrap() error {
	return apperr.ErrDataIntegrity
}
