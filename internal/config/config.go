// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the key
// purger. It is populated by merging built-in defaults, an optional JSON
// file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// KeyPattern is the store-side glob selecting the keys to purge
	// (e.g. "user:*").
	// Env: KEY_PATTERN
	KeyPattern string `env:"KEY_PATTERN"`

	// Purge holds the scan and delete tuning knobs.
	Purge Purge `envPrefix:"PURGE_"`

	// Storage holds the Redis connection and the checkpoint file location.
	Storage Storage `envPrefix:"STORAGE_"`

	// Metrics holds the optional Prometheus endpoint settings.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Purge holds the options consumed read-only by the purge session.
type Purge struct {
	// BatchReadSize is the COUNT hint passed to every SCAN page.
	// Env: PURGE_BATCH_READ_SIZE
	BatchReadSize int `env:"BATCH_READ_SIZE"`

	// KeyInsertLogInterval is the number of collected keys between two
	// progress log entries.
	// Env: PURGE_KEY_INSERT_LOG_INTERVAL
	KeyInsertLogInterval int `env:"KEY_INSERT_LOG_INTERVAL"`

	// RemovalThreshold caps the number of keys collected in one scan pass.
	// Env: PURGE_REMOVAL_THRESHOLD
	RemovalThreshold int `env:"REMOVAL_THRESHOLD"`

	// ReadBatchDelay is waited after every scan page.
	// Env: PURGE_READ_BATCH_DELAY
	ReadBatchDelay time.Duration `env:"READ_BATCH_DELAY"`

	// BatchPurgeSize is the number of keys removed by one DEL request.
	// Env: PURGE_BATCH_PURGE_SIZE
	BatchPurgeSize int `env:"BATCH_PURGE_SIZE"`

	// PurgeBatchDelay is waited after every successful DEL request.
	// Env: PURGE_PURGE_BATCH_DELAY
	PurgeBatchDelay time.Duration `env:"PURGE_BATCH_DELAY"`

	// AbortOnScanError turns a failed scan page into a fatal session error
	// instead of a truncated scan.
	// Env: PURGE_ABORT_ON_SCAN_ERROR
	AbortOnScanError bool `env:"ABORT_ON_SCAN_ERROR"`
}

// Storage groups the configuration of the key-value store and of the
// checkpoint file.
type Storage struct {
	Redis      Redis      `envPrefix:"REDIS_"`
	Checkpoint Checkpoint `envPrefix:"CHECKPOINT_"`
}

// Redis holds connection settings for the key-value store.
type Redis struct {
	// URL is a redis:// or rediss:// connection string
	// (e.g. "redis://:password@localhost:6379/0").
	// Env: STORAGE_REDIS_URL
	URL string `env:"URL"`

	// Env: STORAGE_REDIS_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`
	// Env: STORAGE_REDIS_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`
	// Env: STORAGE_REDIS_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`
}

// Checkpoint holds the location of the pending-keys file.
type Checkpoint struct {
	// Path is the single checkpoint slot. A sibling "<Path>.tmp" is used
	// while the file is being replaced.
	// Env: STORAGE_CHECKPOINT_PATH
	Path string `env:"PATH"`
}

// Metrics holds the Prometheus endpoint settings.
type Metrics struct {
	// Address is the "host:port" the /metrics endpoint listens on. Empty
	// disables the endpoint.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// Log holds logger settings.
type Log struct {
	// Level is one of zerolog's level names (debug, info, warn, error).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. Sources are applied in the following priority order
// (later non-zero values win):
//  1. Built-in defaults
//  2. JSON file (path resolved from env or flags)
//  3. Environment variables
//  4. Command-line flags
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
