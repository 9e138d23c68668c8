// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/MKhiriev/go-key-purger/internal/store"
	"github.com/MKhiriev/go-key-purger/models"
)

type keyScanner struct {
	keyStore store.KeyStore
	cfg      config.Purge
	metrics  *metrics.Collector
	logger   *logger.Logger
}

// NewKeyScanner constructs a [KeyScanner] reading pages of
// cfg.BatchReadSize keys and stopping at cfg.RemovalThreshold keys.
func NewKeyScanner(keyStore store.KeyStore, cfg config.Purge, collector *metrics.Collector, logger *logger.Logger) KeyScanner {
	return &keyScanner{
		keyStore: keyStore,
		cfg:      cfg,
		metrics:  collector,
		logger:   logger,
	}
}

// Scan walks the store cursor from the beginning, waiting
// cfg.ReadBatchDelay after every page that is followed by another one.
//
// The removal threshold is a cap, not an error: the result is cut at exactly
// cfg.RemovalThreshold keys and ThresholdReached is set. A store error ends
// the walk with the keys collected so far (Partial, Err); with
// cfg.AbortOnScanError the same error is also returned.
func (s *keyScanner) Scan(ctx context.Context, pattern string) (models.ScanResult, error) {
	result := models.ScanResult{
		Keys: make([]string, 0, min(s.cfg.BatchReadSize, s.cfg.RemovalThreshold)),
	}

	cursor := uint64(0)
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, next, err := s.keyStore.ScanPage(ctx, cursor, pattern, int64(s.cfg.BatchReadSize))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			return s.partial(result, err)
		}
		result.Pages++

		added := s.collect(&result, page)
		s.metrics.KeysScanned(added)

		if result.ThresholdReached {
			s.logger.Info().
				Int("removal_threshold", s.cfg.RemovalThreshold).
				Msg("removal threshold reached")
			return result, nil
		}

		if next == 0 {
			return result, nil
		}
		cursor = next

		if err = sleepContext(ctx, s.cfg.ReadBatchDelay); err != nil {
			return result, err
		}
	}
}

// collect appends page to result up to the threshold and returns how many
// keys were taken.
func (s *keyScanner) collect(result *models.ScanResult, page []string) int {
	added := 0
	for _, key := range page {
		result.Keys = append(result.Keys, key)
		added++

		if count := len(result.Keys); count%s.cfg.KeyInsertLogInterval == 0 {
			s.logger.Info().
				Int("key_insert_log_interval", s.cfg.KeyInsertLogInterval).
				Int("count", count).
				Msg("keys added")
		}

		if len(result.Keys) >= s.cfg.RemovalThreshold {
			result.ThresholdReached = true
			break
		}
	}

	return added
}

func (s *keyScanner) partial(result models.ScanResult, cause error) (models.ScanResult, error) {
	result.Partial = true
	result.Err = fmt.Errorf("%w: %w", ErrScanFailed, cause)
	s.metrics.ScanFailed()

	if s.cfg.AbortOnScanError {
		s.logger.Error().Err(cause).Int("collected", result.Count()).Msg("error occurred during the read, aborting")
		return result, result.Err
	}

	s.logger.Warn().Err(cause).Int("collected", result.Count()).Msg("error occurred during the read, continuing with partial scan")
	return result, nil
}
