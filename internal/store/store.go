package store

import (
	"context"
	"time"
)

// Store defines the generation history contract.
// All implementations must be safe for concurrent use.
type Store interface {
	SaveGeneration(ctx context.Context, gen *Generation) error
	GetGeneration(ctx context.Context, id string) (*Generation, error)
	ListGenerations(ctx context.Context, filter GenerationFilter) ([]*Generation, error)
	DeleteGeneration(ctx context.Context, id string) error
	// PruneGenerations deletes generations created before cutoff and
	// returns how many were removed.
	PruneGenerations(ctx context.Context, cutoff time.Time) (int64, error)

	// Maintenance
	Migrate(ctx context.Context) error
	Vacuum(ctx context.Context) error

	// Lifecycle
	Close() error
}
