package service

import (
	"context"

	"github.com/MKhiriev/go-key-purger/models"
)

// KeyScanner enumerates the keys matching a pattern, up to the removal
// threshold. Each call starts a fresh iteration of the key space.
type KeyScanner interface {
	// Scan returns the collected keys in store order. Store failures are
	// reported through the result's Partial and Err fields; the returned
	// error is non-nil only for context cancellation or when scan errors
	// are configured to abort.
	Scan(ctx context.Context, pattern string) (models.ScanResult, error)
}

// BatchPurger deletes a pending key list in consecutive fixed-size batches.
type BatchPurger interface {
	// Purge deletes keys in order. When a batch other than the first
	// fails, the checkpoint is replaced with the keys from that batch on
	// before the error is returned.
	Purge(ctx context.Context, keys []string) (models.PurgeReport, error)
}

// PurgeService drives whole purge sessions.
type PurgeService interface {
	// Run repeats load-or-scan, purge and checkpoint reset until a pass
	// yields no keys.
	Run(ctx context.Context, pattern string) (models.SessionReport, error)
}

// IDGenerator produces session identifiers.
type IDGenerator interface {
	Generate() string
}
