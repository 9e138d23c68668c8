// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before any connection to the store is attempted. All failing
// groups are reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.KeyPattern == "" {
		errs = append(errs, ErrNoKeyPattern)
	}

	if err := cfg.Purge.validate(); err != nil {
		errs = append(errs, err)
	}

	if err := cfg.Storage.validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("%w: level %q", ErrInvalidLogConfigs, cfg.Log.Level))
		}
	}

	return errors.Join(errs...)
}

func (p Purge) validate() error {
	switch {
	case p.BatchReadSize <= 0:
		return fmt.Errorf("%w: batch read size must be positive", ErrInvalidPurgeConfigs)
	case p.KeyInsertLogInterval <= 0:
		return fmt.Errorf("%w: key insert log interval must be positive", ErrInvalidPurgeConfigs)
	case p.RemovalThreshold <= 0:
		return fmt.Errorf("%w: removal threshold must be positive", ErrInvalidPurgeConfigs)
	case p.BatchPurgeSize <= 0:
		return fmt.Errorf("%w: batch purge size must be positive", ErrInvalidPurgeConfigs)
	case p.ReadBatchDelay < 0 || p.PurgeBatchDelay < 0:
		return fmt.Errorf("%w: delays can't be negative", ErrInvalidPurgeConfigs)
	}

	return nil
}

func (s Storage) validate() error {
	if s.Checkpoint.Path == "" {
		return fmt.Errorf("%w: checkpoint path is empty", ErrInvalidStorageConfigs)
	}

	if _, err := redis.ParseURL(s.Redis.URL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStorageConfigs, err)
	}

	return nil
}
