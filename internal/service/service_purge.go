// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/MKhiriev/go-key-purger/internal/store"
	"github.com/MKhiriev/go-key-purger/models"
)

type purgeService struct {
	scanner    KeyScanner
	purger     BatchPurger
	checkpoint store.CheckpointStore
	ids        IDGenerator
	metrics    *metrics.Collector
	logger     *logger.Logger
}

// NewPurgeService constructs the session orchestrator.
func NewPurgeService(
	scanner KeyScanner,
	purger BatchPurger,
	checkpoint store.CheckpointStore,
	ids IDGenerator,
	collector *metrics.Collector,
	logger *logger.Logger,
) PurgeService {
	return &purgeService{
		scanner:    scanner,
		purger:     purger,
		checkpoint: checkpoint,
		ids:        ids,
		metrics:    collector,
		logger:     logger,
	}
}

// Run executes one purge session for pattern:
//
//	LOAD_OR_SCAN -> PURGE -> CHECKPOINT_RESET -> (LOAD_OR_SCAN | DONE)
//
// LOAD_OR_SCAN resumes from the checkpoint when it holds keys, otherwise it
// scans and saves the result (even an empty one). CHECKPOINT_RESET clears
// the checkpoint after every successful purge. The session is DONE after a
// pass whose key list was empty, leaving no checkpoint behind.
//
// Any purge error ends the session; by then the purger has already left a
// checkpoint to resume from.
func (s *purgeService) Run(ctx context.Context, pattern string) (models.SessionReport, error) {
	report := models.SessionReport{
		SessionID: s.ids.Generate(),
		Pattern:   pattern,
		StartedAt: time.Now(),
	}
	log := s.logger.WithStr("session_id", report.SessionID)

	finish := func(err error) (models.SessionReport, error) {
		report.FinishedAt = time.Now()
		return report, err
	}

	if pattern == "" {
		return finish(ErrNoKeyPattern)
	}

	log.Info().Str("pattern", pattern).Msg("purge session started")

	for {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		report.Passes++

		keys, err := s.loadOrScan(ctx, pattern, &report, log)
		if err != nil {
			return finish(err)
		}
		log.Info().Int("key_count", len(keys)).Int("pass", report.Passes).Msg("retrieving completed")

		purged, err := s.purger.Purge(ctx, keys)
		report.Deleted += purged.Deleted
		if err != nil {
			log.Error().Err(err).Int64("removed_count", report.Deleted).Msg("purge session failed")
			return finish(err)
		}

		log.Info().Int64("removed_count", report.Deleted).Msg("purged count")

		if err = s.checkpoint.Clear(ctx); err != nil {
			return finish(fmt.Errorf("error resetting checkpoint: %w", err))
		}

		if len(keys) == 0 {
			break
		}

		log.Info().Msg("preparing for the next loop")
	}

	log.Info().
		Int("passes", report.Passes).
		Int64("removed_count", report.Deleted).
		Msg("no further results found")

	return finish(nil)
}

func (s *purgeService) loadOrScan(ctx context.Context, pattern string, report *models.SessionReport, log *logger.Logger) ([]string, error) {
	log.Info().Msg("retrieving uncompleted keys from checkpoint")

	keys, ok, err := s.checkpoint.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading checkpoint: %w", err)
	}
	if ok {
		report.Resumed++
		s.metrics.PassStarted(metrics.SourceCheckpoint)
		return keys, nil
	}

	log.Info().Msg("uncompleted keys not found, retrieving keys from store")

	result, err := s.scanner.Scan(ctx, pattern)
	if result.Partial {
		report.PartialScans++
		log.Warn().Err(result.Err).Int("collected", result.Count()).Msg("scan ended early")
	}
	if err != nil {
		return nil, err
	}

	if err = s.checkpoint.Save(ctx, result.Keys); err != nil {
		return nil, fmt.Errorf("error saving scanned keys: %w", err)
	}
	s.metrics.PassStarted(metrics.SourceScan)

	return result.Keys, nil
}
