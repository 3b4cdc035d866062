// Package apperr holds the error sentinels shared by the repositories, the
// navigation engine and the flow controller. Callers match them with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrDataIntegrity     = errors.New("data integrity violation")
	ErrSessionComplete   = errors.New("session already complete")
	ErrSessionIncomplete = errors.New("session not complete")
	ErrConflict          = errors.New("conflict")
	ErrInvalidInput      = errors.New("invalid input")
)
