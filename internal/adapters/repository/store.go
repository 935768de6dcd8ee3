// Package repository persists engine snapshots.
package repository

import (
	"context"

	"github.com/okian/jobmatch/internal/domain/model"
)

// Store saves and loads engine snapshots.
type Store interface {
	// Save replaces the stored snapshot with snap.
	Save(ctx context.Context, snap model.Snapshot) error

	// Load returns the stored snapshot.
	// Returns ErrNotFound if nothing has been saved yet.
	Load(ctx context.Context) (model.Snapshot, error)

	Close() error
}
