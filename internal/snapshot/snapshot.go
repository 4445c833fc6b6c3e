// Package snapshot persists the current assessment document in a single
// named durable slot.
package snapshot

import (
	"context"
	"errors"

	"radar/api/internal/assessment"
)

// ErrNoSnapshot indicates the slot is empty (nothing saved yet, or the
// slot was cleared by a reset).
var ErrNoSnapshot = errors.New("no saved assessment snapshot")

// Store reads and writes the one durable document slot.
type Store interface {
	Save(ctx context.Context, doc assessment.Document) error
	Load(ctx context.Context) (assessment.Document, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
