package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyStore is the narrow view of the remote key-value store the purge engine
// needs: cursor-based enumeration and multi-key deletion.
type KeyStore interface {
	// ScanPage returns one page of keys matching pattern starting at cursor,
	// and the cursor of the next page. A returned cursor of 0 means the
	// iteration is complete. count is a hint, pages may be larger or smaller.
	ScanPage(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error)

	// Delete removes keys in a single request and returns how many were
	// actually removed. Absent keys are not an error.
	Delete(ctx context.Context, keys []string) (int64, error)
}

// CheckpointStore owns the single durable record of keys that are pending
// deletion. No other component reads or writes that record.
type CheckpointStore interface {
	// Load returns the pending list and true when a non-empty checkpoint
	// exists. A missing or empty checkpoint returns nil, false, nil.
	Load(ctx context.Context) ([]string, bool, error)

	// Save atomically replaces the checkpoint with keys.
	Save(ctx context.Context, keys []string) error

	// Clear removes the checkpoint. It is a no-op when none exists.
	Clear(ctx context.Context) error
}
