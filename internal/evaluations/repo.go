package evaluations

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an evaluation does not exist.
var ErrNotFound = errors.New("evaluation not found")

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Repo persists recorded evaluations.
type Repo interface {
	Create(ctx context.Context, evaluation Evaluation) error
	GetByID(ctx context.Context, id string) (Evaluation, error)
	// ListRecent returns evaluations newest first.
	ListRecent(ctx context.Context, limit int) ([]Evaluation, error)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
