// Package repository keeps generated draws so they can be fetched again by ID.
package repository

import (
	"context"

	"github.com/okian/fairdraw/internal/domain/model"
)

// Store provides read/write access to generated draws.
type Store interface {
	// Save stores d under d.ID, replacing any draw with the same ID.
	Save(ctx context.Context, d model.Draw) error

	// Get returns the draw with the given ID.
	// Returns ErrNotFound if the draw is unknown or was evicted.
	Get(ctx context.Context, id string) (model.Draw, error)

	// List returns summaries of the stored draws, newest first, at most limit
	// entries. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]model.DrawSummary, error)

	// Count returns the number of stored draws.
	Count(ctx context.Context) int
}
