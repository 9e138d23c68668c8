package service

import "errors"

// Sentinel errors returned by the purge services. The underlying store or
// context error is always wrapped alongside, so callers can match either.
var (
	// ErrNoKeyPattern is returned by Run when no key pattern is given.
	ErrNoKeyPattern = errors.New("key pattern can't be empty")

	// ErrScanFailed marks a scan pass cut short by a store error. It is
	// reported through models.ScanResult.Err and only returned as an error
	// when scan errors are configured to abort the session.
	ErrScanFailed = errors.New("error occurred during the read")

	// ErrBatchDeleteFailed is returned when a delete request fails.
	ErrBatchDeleteFailed = errors.New("error occurred during purge")

	// ErrPurgeInterrupted is returned when the context is cancelled between
	// two delete requests.
	ErrPurgeInterrupted = errors.New("purge interrupted")
)
