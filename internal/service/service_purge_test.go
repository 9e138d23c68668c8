// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/metrics"
	"github.com/MKhiriev/go-key-purger/internal/mock"
	"github.com/MKhiriev/go-key-purger/internal/store"
)

func newTestPurgeService(ks store.KeyStore, cp store.CheckpointStore, cfg config.Purge, collector *metrics.Collector) PurgeService {
	log := logger.Nop()
	scanner := NewKeyScanner(ks, cfg, collector, log)
	purger := NewBatchPurger(ks, cp, cfg, collector, log)
	return NewPurgeService(scanner, purger, cp, staticID("session-1"), collector, log)
}

func assertNoCheckpoint(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPurgeService_Run_PurgesEverything(t *testing.T) {
	ks := newFakeKeyStore(userKeys(1, 2500)...)
	ks.add("session:1", "session:2")
	cp, path := newTempCheckpoint(t)

	reg := prometheusRegistry()
	svc := newTestPurgeService(ks, cp, purgeConfig(), metrics.NewCollector(reg))

	report, err := svc.Run(context.Background(), "user:*")

	require.NoError(t, err)
	assert.Equal(t, "session-1", report.SessionID)
	assert.Equal(t, "user:*", report.Pattern)
	assert.Equal(t, int64(2500), report.Deleted)
	assert.Equal(t, 2, report.Passes)
	assert.Zero(t, report.Resumed)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	// three pages read in the first pass, one empty page in the second
	assert.Equal(t, 4, ks.scanCalls)

	require.Len(t, ks.deleteCalls, 3)
	assert.Len(t, ks.deleteCalls[0], 1000)
	assert.Len(t, ks.deleteCalls[1], 1000)
	assert.Len(t, ks.deleteCalls[2], 500)

	assert.Equal(t, 2, ks.liveCount())
	assertNoCheckpoint(t, path)
	assert.Equal(t, 2.0, counterValue(t, reg, "key_purger_passes_total"))
}

func TestPurgeService_Run_NothingToPurge(t *testing.T) {
	ks := newFakeKeyStore("session:1")
	cp, path := newTempCheckpoint(t)
	svc := newTestPurgeService(ks, cp, purgeConfig(), nil)

	report, err := svc.Run(context.Background(), "user:*")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Passes)
	assert.Zero(t, report.Deleted)
	assert.Empty(t, ks.deleteCalls)
	assertNoCheckpoint(t, path)
}

func TestPurgeService_Run_FailureLeavesResumableCheckpoint(t *testing.T) {
	cause := errors.New("connection reset")

	ks := newFakeKeyStore(userKeys(1, 2500)...)
	ks.deleteErrs[1] = cause
	cp, path := newTempCheckpoint(t)
	svc := newTestPurgeService(ks, cp, purgeConfig(), nil)

	report, err := svc.Run(context.Background(), "user:*")

	require.ErrorIs(t, err, ErrBatchDeleteFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, int64(1000), report.Deleted)
	assert.Equal(t, 1, report.Passes)

	saved, ok, loadErr := cp.Load(context.Background())
	require.NoError(t, loadErr)
	require.True(t, ok)
	assert.Equal(t, userKeys(1001, 2500), saved)

	// next session resumes from the checkpoint without scanning first
	scansBefore := ks.scanCalls
	report, err = svc.Run(context.Background(), "user:*")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Resumed)
	assert.Equal(t, int64(1500), report.Deleted)
	assert.Equal(t, 2, report.Passes)
	assert.Equal(t, scansBefore+1, ks.scanCalls)
	assert.Zero(t, ks.liveCount())
	assertNoCheckpoint(t, path)
}

func TestPurgeService_Run_ThresholdLimitsEachPass(t *testing.T) {
	cfg := purgeConfig()
	cfg.RemovalThreshold = 500

	ks := newFakeKeyStore(userKeys(1, 10_000)...)
	cp, path := newTempCheckpoint(t)
	svc := newTestPurgeService(ks, cp, cfg, nil)

	report, err := svc.Run(context.Background(), "user:*")

	require.NoError(t, err)
	assert.Equal(t, int64(10_000), report.Deleted)
	assert.Equal(t, 21, report.Passes)

	require.Len(t, ks.deleteCalls, 20)
	assert.Equal(t, userKeys(1, 500), ks.deleteCalls[0])
	assert.Equal(t, userKeys(501, 1000), ks.deleteCalls[1])
	assert.Zero(t, ks.liveCount())
	assertNoCheckpoint(t, path)
}

func TestPurgeService_Run_PartialScanContinues(t *testing.T) {
	ks := newFakeKeyStore(userKeys(1, 2500)...)
	ks.scanErrs[1] = errors.New("i/o timeout")
	cp, path := newTempCheckpoint(t)
	svc := newTestPurgeService(ks, cp, purgeConfig(), nil)

	report, err := svc.Run(context.Background(), "user:*")

	require.NoError(t, err)
	assert.Equal(t, 1, report.PartialScans)
	assert.Equal(t, int64(2500), report.Deleted)
	assert.Equal(t, 3, report.Passes)
	assertNoCheckpoint(t, path)
}

func TestPurgeService_Run_ScanAbort(t *testing.T) {
	cfg := purgeConfig()
	cfg.AbortOnScanError = true

	ks := newFakeKeyStore(userKeys(1, 2500)...)
	ks.scanErrs[1] = errors.New("i/o timeout")
	cp, path := newTempCheckpoint(t)
	svc := newTestPurgeService(ks, cp, cfg, nil)

	report, err := svc.Run(context.Background(), "user:*")

	require.ErrorIs(t, err, ErrScanFailed)
	assert.Equal(t, 1, report.PartialScans)
	assert.Zero(t, report.Deleted)
	assert.Empty(t, ks.deleteCalls)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestPurgeService_Run_EmptyPattern(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewPurgeService(
		NewKeyScanner(mock.NewMockKeyStore(ctrl), purgeConfig(), nil, logger.Nop()),
		NewBatchPurger(mock.NewMockKeyStore(ctrl), mock.NewMockCheckpointStore(ctrl), purgeConfig(), nil, logger.Nop()),
		mock.NewMockCheckpointStore(ctrl),
		staticID("id"),
		nil,
		logger.Nop(),
	)

	report, err := svc.Run(context.Background(), "")

	require.ErrorIs(t, err, ErrNoKeyPattern)
	assert.Zero(t, report.Passes)
}

func TestPurgeService_Run_CancelledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	ks := mock.NewMockKeyStore(ctrl)
	cp := mock.NewMockCheckpointStore(ctrl)
	svc := newTestPurgeService(ks, cp, purgeConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Run(ctx, "user:*")

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Passes)
}

func TestPurgeService_Run_CheckpointErrors(t *testing.T) {
	ioErr := errors.New("permission denied")

	tests := []struct {
		name  string
		setup func(cp *mock.MockCheckpointStore)
	}{
		{
			name: "load",
			setup: func(cp *mock.MockCheckpointStore) {
				cp.EXPECT().Load(gomock.Any()).Return(nil, false, ioErr)
			},
		},
		{
			name: "save",
			setup: func(cp *mock.MockCheckpointStore) {
				cp.EXPECT().Load(gomock.Any()).Return(nil, false, nil)
				cp.EXPECT().Save(gomock.Any(), []string{"user:1"}).Return(ioErr)
			},
		},
		{
			name: "clear",
			setup: func(cp *mock.MockCheckpointStore) {
				cp.EXPECT().Load(gomock.Any()).Return([]string{"user:1"}, true, nil)
				cp.EXPECT().Clear(gomock.Any()).Return(ioErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cp := mock.NewMockCheckpointStore(ctrl)
			tt.setup(cp)

			ks := newFakeKeyStore("user:1")
			svc := newTestPurgeService(ks, cp, purgeConfig(), nil)

			_, err := svc.Run(context.Background(), "user:*")

			require.ErrorIs(t, err, ioErr)
		})
	}
}
