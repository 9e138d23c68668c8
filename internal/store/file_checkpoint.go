// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-key-purger/internal/logger"
)

const tmpSuffix = ".tmp"

// checkpointFileStorage is the file-backed [CheckpointStore]. The checkpoint
// is a newline-delimited list of keys at a single fixed path. Keys that
// would not survive a line round trip (empty, containing CR or LF, or
// starting with a double quote) are stored Go-quoted; see [encodeKey].
//
// Save never edits the file in place: the new list is written to a sibling
// "<path>.tmp", fsynced and renamed over the checkpoint, so a reader sees
// either the complete old list or the complete new one. The store assumes a
// single writer per path.
type checkpointFileStorage struct {
	path   string
	logger *logger.Logger
}

// NewCheckpointFileStorage constructs a [CheckpointStore] at path.
func NewCheckpointFileStorage(path string, logger *logger.Logger) CheckpointStore {
	return &checkpointFileStorage{
		path:   path,
		logger: logger,
	}
}

// Load reads the checkpoint.
//
// Returns:
//   - keys, true, nil when the file exists and lists at least one key;
//   - nil, false, nil when the file does not exist;
//   - nil, false, nil when the file exists but holds no keys;
//   - an [ErrCheckpointRead] error when the file cannot be read.
func (c *checkpointFileStorage) Load(ctx context.Context) ([]string, bool, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Err(err).Str("path", c.path).Msg("error opening checkpoint")
		return nil, false, fmt.Errorf("%w: %w", ErrCheckpointRead, err)
	}
	defer f.Close()

	keys := make([]string, 0)
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			key, decodeErr := decodeKey(line)
			if decodeErr != nil {
				c.logger.Err(decodeErr).Str("path", c.path).Msg("malformed checkpoint line")
				return nil, false, fmt.Errorf("%w: %w", ErrCheckpointRead, decodeErr)
			}
			keys = append(keys, key)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.logger.Err(err).Str("path", c.path).Msg("error reading checkpoint")
			return nil, false, fmt.Errorf("%w: %w", ErrCheckpointRead, err)
		}
	}

	if len(keys) == 0 {
		c.logger.Info().Str("path", c.path).Msg("checkpoint is empty")
		return nil, false, nil
	}

	c.logger.Debug().Str("path", c.path).Int("keys", len(keys)).Msg("checkpoint loaded")
	return keys, true, nil
}

// Save replaces the checkpoint with keys. An empty list produces an empty
// file, which Load reports as "no pending work".
func (c *checkpointFileStorage) Save(ctx context.Context, keys []string) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}

	tmpPath := c.path + tmpSuffix
	if err := writeLines(tmpPath, keys); err != nil {
		_ = os.Remove(tmpPath)
		c.logger.Err(err).Str("file", tmpPath).Msg("failed to write temporary checkpoint")
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		c.logger.Err(err).Str("from", tmpPath).Str("to", c.path).Msg("failed to rename temporary checkpoint")
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}

	c.logger.Debug().Str("path", c.path).Int("keys", len(keys)).Msg("checkpoint saved")
	return nil
}

// Clear removes the checkpoint and any leftover temporary file.
func (c *checkpointFileStorage) Clear(ctx context.Context) error {
	for _, p := range []string{c.path, c.path + tmpSuffix} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Err(err).Str("path", p).Msg("failed to remove checkpoint")
			return fmt.Errorf("%w: %w", ErrCheckpointRemove, err)
		}
	}

	return nil
}

// encodeKey returns key as a single checkpoint line. Plain keys are written
// as is; the rest are Go-quoted so that CR, LF and the empty key survive.
func encodeKey(key string) string {
	if key == "" || strings.ContainsAny(key, "\r\n") || strings.HasPrefix(key, `"`) {
		return strconv.Quote(key)
	}
	return key
}

func decodeKey(line string) (string, error) {
	if !strings.HasPrefix(line, `"`) {
		return line, nil
	}
	return strconv.Unquote(line)
}

func writeLines(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err = w.WriteString(encodeKey(line)); err == nil {
			err = w.WriteByte('\n')
		}
		if err != nil {
			_ = f.Close()
			return err
		}
	}

	if err = w.Flush(); err != nil {
		_ = f.Close()
		return err
	}

	// data must reach the disk before the rename makes it visible
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
