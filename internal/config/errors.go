package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrNoKeyPattern indicates that no key pattern was supplied by any
	// source.
	ErrNoKeyPattern = errors.New("key pattern can't be empty")
	// ErrInvalidPurgeConfigs indicates non-positive sizes or negative delays.
	ErrInvalidPurgeConfigs = errors.New("invalid purge configuration")
	// ErrInvalidStorageConfigs indicates an unparseable Redis URL or an
	// empty checkpoint path.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)

// ErrInvalidDuration is returned when a duration string matches neither Go
// syntax ("1.5s") nor the "[-][d:]hh:mm:ss[.fffffff]" form.
var ErrInvalidDuration = errors.New("invalid duration format, e.g. \"3s\" or \"0:00:00:03.0000000\"")
