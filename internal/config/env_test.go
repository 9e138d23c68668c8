// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG":      "/path/to/config.json",
		"KEY_PATTERN": "user:*",

		"PURGE_BATCH_READ_SIZE":         "500",
		"PURGE_KEY_INSERT_LOG_INTERVAL": "50",
		"PURGE_REMOVAL_THRESHOLD":       "1000",
		"PURGE_READ_BATCH_DELAY":        "0:00:00:00.1000000",
		"PURGE_BATCH_PURGE_SIZE":        "200",
		"PURGE_PURGE_BATCH_DELAY":       "2s",
		"PURGE_ABORT_ON_SCAN_ERROR":     "true",

		"STORAGE_REDIS_URL":           "redis://localhost:6380/1",
		"STORAGE_REDIS_DIAL_TIMEOUT":  "1s",
		"STORAGE_REDIS_READ_TIMEOUT":  "2s",
		"STORAGE_REDIS_WRITE_TIMEOUT": "3s",
		"STORAGE_CHECKPOINT_PATH":     "/var/lib/purger/pending",

		"METRICS_ADDRESS": "127.0.0.1:9100",
		"LOG_LEVEL":       "debug",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "user:*", cfg.KeyPattern)

	assert.Equal(t, 500, cfg.Purge.BatchReadSize)
	assert.Equal(t, 50, cfg.Purge.KeyInsertLogInterval)
	assert.Equal(t, 1000, cfg.Purge.RemovalThreshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Purge.ReadBatchDelay)
	assert.Equal(t, 200, cfg.Purge.BatchPurgeSize)
	assert.Equal(t, 2*time.Second, cfg.Purge.PurgeBatchDelay)
	assert.True(t, cfg.Purge.AbortOnScanError)

	assert.Equal(t, "redis://localhost:6380/1", cfg.Storage.Redis.URL)
	assert.Equal(t, time.Second, cfg.Storage.Redis.DialTimeout)
	assert.Equal(t, 2*time.Second, cfg.Storage.Redis.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Storage.Redis.WriteTimeout)
	assert.Equal(t, "/var/lib/purger/pending", cfg.Storage.Checkpoint.Path)

	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"KEY_PATTERN":            "session:*",
		"PURGE_BATCH_PURGE_SIZE": "10",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "session:*", cfg.KeyPattern)
	assert.Equal(t, 10, cfg.Purge.BatchPurgeSize)
	assert.Zero(t, cfg.Purge.BatchReadSize)
	assert.Zero(t, cfg.Purge.ReadBatchDelay)
	assert.Empty(t, cfg.Storage.Redis.URL)
}

func TestParseEnv_MalformedDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"PURGE_READ_BATCH_DELAY": "three seconds",
	})

	err := parseEnv(&StructuredConfig{})
	assert.ErrorContains(t, err, "invalid duration format")
}

func TestParseEnv_MalformedInt(t *testing.T) {
	setEnvVars(t, map[string]string{
		"PURGE_BATCH_READ_SIZE": "lots",
	})

	assert.Error(t, parseEnv(&StructuredConfig{}))
}

var knownEnvVars = []string{
	"CONFIG",
	"KEY_PATTERN",
	"PURGE_BATCH_READ_SIZE",
	"PURGE_KEY_INSERT_LOG_INTERVAL",
	"PURGE_REMOVAL_THRESHOLD",
	"PURGE_READ_BATCH_DELAY",
	"PURGE_BATCH_PURGE_SIZE",
	"PURGE_PURGE_BATCH_DELAY",
	"PURGE_ABORT_ON_SCAN_ERROR",
	"STORAGE_REDIS_URL",
	"STORAGE_REDIS_DIAL_TIMEOUT",
	"STORAGE_REDIS_READ_TIMEOUT",
	"STORAGE_REDIS_WRITE_TIMEOUT",
	"STORAGE_CHECKPOINT_PATH",
	"METRICS_ADDRESS",
	"LOG_LEVEL",
}

// setEnvVars clears every variable the config reads and then sets vars.
// t.Setenv registers the restore of the previous values.
func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range knownEnvVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
