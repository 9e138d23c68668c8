// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/MKhiriev/go-key-purger/internal/store"
	"github.com/MKhiriev/go-key-purger/models"
)

type batchPurger struct {
	keyStore   store.KeyStore
	checkpoint store.CheckpointStore
	cfg        config.Purge
	metrics    *metrics.Collector
	logger     *logger.Logger
}

// NewBatchPurger constructs a [BatchPurger] deleting cfg.BatchPurgeSize keys
// per request and waiting cfg.PurgeBatchDelay after each successful one.
func NewBatchPurger(keyStore store.KeyStore, checkpoint store.CheckpointStore, cfg config.Purge, collector *metrics.Collector, logger *logger.Logger) BatchPurger {
	return &batchPurger{
		keyStore:   keyStore,
		checkpoint: checkpoint,
		cfg:        cfg,
		metrics:    collector,
		logger:     logger,
	}
}

// Purge deletes keys batch by batch, in input order.
//
// Batch i covers keys[i*size : (i+1)*size]. A batch counts as done once
// the delete request returns without error; the reported count is summed
// but not compared with the batch size, since keys may already be gone.
//
// On failure of batch 0 nothing is known to be deleted and the checkpoint
// is left as it was. On failure of batch i > 0 the checkpoint is replaced
// with keys[i*size:] and the error is returned. A cancelled context is
// handled the same way, at the first batch not yet started.
func (p *batchPurger) Purge(ctx context.Context, keys []string) (models.PurgeReport, error) {
	size := p.cfg.BatchPurgeSize
	total := batchCount(len(keys), size)
	report := models.PurgeReport{Keys: len(keys)}

	p.logger.Info().
		Int("total_iteration", total).
		Int("batch_purge_size", size).
		Msg("purging started")
	p.metrics.SetPending(len(keys))

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return report, p.fail(ctx, keys, i, total, fmt.Errorf("%w: %w", ErrPurgeInterrupted, err))
		}

		start, end := i*size, min((i+1)*size, len(keys))

		p.logger.Info().
			Int("current_iteration", i+1).
			Int("remaining_iteration", total-i-1).
			Msg("purging batch")

		deleted, err := p.keyStore.Delete(ctx, keys[start:end])
		if err != nil {
			p.metrics.BatchFailed()
			return report, p.fail(ctx, keys, i, total, fmt.Errorf("%w: %w", ErrBatchDeleteFailed, err))
		}

		report.Deleted += deleted
		report.Batches++
		p.metrics.BatchSucceeded(deleted)
		p.metrics.SetPending(len(keys) - end)

		// an interrupted wait is picked up by the ctx check of the next batch
		_ = sleepContext(ctx, p.cfg.PurgeBatchDelay)
	}

	return report, nil
}

// fail applies the partial-failure policy for batch i and returns the error
// to propagate.
func (p *batchPurger) fail(ctx context.Context, keys []string, i, total int, cause error) error {
	err := fmt.Errorf("batch %d of %d: %w", i+1, total, cause)
	p.logger.Error().Err(err).Msg("exception occurred during purge")

	if i == 0 {
		return err
	}

	remaining := keys[i*p.cfg.BatchPurgeSize:]

	// the save must outlive a cancelled purge context
	if saveErr := p.checkpoint.Save(context.WithoutCancel(ctx), remaining); saveErr != nil {
		p.logger.Error().Err(saveErr).Int("remaining", len(remaining)).Msg("failed to save uncompleted keys")
		return errors.Join(err, saveErr)
	}

	p.logger.Info().Int("remaining", len(remaining)).Msg("uncompleted keys saved to checkpoint")
	return err
}

func batchCount(n, size int) int {
	return (n + size - 1) / size
}
