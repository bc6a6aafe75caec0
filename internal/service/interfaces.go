// Package service defines the contracts shared between the pipeline and its
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/88maurosls/asics/internal/model"
)

// ClassificationStore is the contract for the durable article+color ->
// label mapping shared across sessions.
type ClassificationStore interface {
	// Hydrate reads every persisted entry.
	Hydrate(ctx context.Context) (model.ClassificationSet, error)
	// Commit persists entries: existing keys are updated in place, new keys
	// appended. Committing the same entries twice must not duplicate records.
	Commit(ctx context.Context, entries []model.ClassificationEntry) (*CommitResult, error)
}

// CommitResult reports what a Commit actually did. Failed counts entries
// that could not be saved; partial success is surfaced, never swallowed.
type CommitResult struct {
	Updated  int
	Appended int
	Failed   int
}

// Saved returns the number of entries persisted.
func (r *CommitResult) Saved() int {
	return r.Updated + r.Appended
}

// RetryOptions configures retry behavior for remote store operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// SessionStats summarizes one conversion run.
type SessionStats struct {
	FilesRead     int
	FilesSkipped  int
	CanonicalRows int
	ExpandedRows  int
	KeysTotal     int
	KeysPrompted  int
	PagesWritten  int
	Duration      time.Duration
}
