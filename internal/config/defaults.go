package config

import "time"

const (
	DefaultBatchReadSize        = 1000
	DefaultKeyInsertLogInterval = 100
	DefaultRemovalThreshold     = 10_000_000
	DefaultBatchPurgeSize       = 1000

	DefaultRedisURL       = "redis://localhost:6379/0"
	DefaultDialTimeout    = 5 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultCheckpointPath = "purge.checkpoint"
	DefaultLogLevel       = "info"
)

// defaultConfig returns the lowest-priority configuration layer. Delays
// default to zero, so they are not listed.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Purge: Purge{
			BatchReadSize:        DefaultBatchReadSize,
			KeyInsertLogInterval: DefaultKeyInsertLogInterval,
			RemovalThreshold:     DefaultRemovalThreshold,
			BatchPurgeSize:       DefaultBatchPurgeSize,
		},
		Storage: Storage{
			Redis: Redis{
				URL:          DefaultRedisURL,
				DialTimeout:  DefaultDialTimeout,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
			},
			Checkpoint: Checkpoint{
				Path: DefaultCheckpointPath,
			},
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}
