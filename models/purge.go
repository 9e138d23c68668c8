// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PurgeReport summarises one pass of the batch purger over a pending key list.
type PurgeReport struct {
	// Deleted is the sum of counts reported by the store. It may be lower
	// than the number of keys submitted when some keys were already absent.
	Deleted int64

	// Batches is the number of delete requests that completed successfully.
	Batches int

	// Keys is the size of the pending list the pass was started with.
	Keys int
}

// SessionReport summarises a whole purge session, from the first
// load-or-scan until a pass yields no keys.
type SessionReport struct {
	SessionID string
	Pattern   string

	// Passes counts every load-or-scan -> purge cycle, including the final
	// empty one.
	Passes int

	// Deleted is the total across all passes.
	Deleted int64

	// Resumed counts passes whose key list came from a checkpoint rather
	// than a fresh scan.
	Resumed int

	// PartialScans counts scans that ended early on a store error.
	PartialScans int

	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the session ran.
func (r SessionReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
