// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ScanResult is the outcome of one key-enumeration pass.
//
// Keys preserves the order in which the store returned them. When the pass
// was cut short by a store error, Partial is true and Err carries the cause;
// Keys then holds everything collected before the failure.
type ScanResult struct {
	Keys []string

	// ThresholdReached reports that the pass stopped at the configured
	// removal threshold rather than at the end of the key space.
	ThresholdReached bool

	// Partial reports that the pass stopped because the store failed.
	Partial bool
	Err     error

	// Pages is the number of scan pages fetched from the store.
	Pages int
}

// Count returns the number of keys collected.
func (r ScanResult) Count() int {
	return len(r.Keys)
}
