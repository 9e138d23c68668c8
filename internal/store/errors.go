package store

import "errors"

// Sentinel errors returned by the store layer. Callers should use
// [errors.Is] to match against these values; the underlying cause is always
// wrapped alongside.
var (
	// ErrConnectingRedis is returned when the initial PING fails.
	ErrConnectingRedis = errors.New("error connecting redis")

	// ErrParsingRedisURL is returned when the connection string is malformed.
	ErrParsingRedisURL = errors.New("error parsing redis url")

	// ErrScanningKeys is returned when a SCAN request fails.
	ErrScanningKeys = errors.New("error scanning keys")

	// ErrDeletingKeys is returned when a DEL request fails.
	ErrDeletingKeys = errors.New("error deleting keys")
)

// Checkpoint file errors.
var (
	// ErrCheckpointRead is returned when an existing checkpoint cannot be
	// opened or read.
	ErrCheckpointRead = errors.New("error reading checkpoint")

	// ErrCheckpointWrite is returned when the checkpoint cannot be replaced.
	// The previous checkpoint, if any, is left in place.
	ErrCheckpointWrite = errors.New("error writing checkpoint")

	// ErrCheckpointRemove is returned when the checkpoint cannot be removed.
	ErrCheckpointRemove = errors.New("error removing checkpoint")
)
