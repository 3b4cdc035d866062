package repository

import (
	"errors"
	"fmt"

	"github.com/lshigami/questree/internal/apperr"
	"gorm.io/gorm"
)

// wrapNotFound turns gorm's record-not-found into apperr.ErrNotFound so that
// callers never import gorm to branch on a missing row.
func wrapNotFound(err error, what string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", what, id, apperr.ErrNotFound)
	}
	return fmt.Errorf("find %s %v: %w", what, id, err)
}
