package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	KeyPattern string `json:"key_pattern"`

	Purge struct {
		BatchReadSize        int      `json:"batch_read_size"`
		KeyInsertLogInterval int      `json:"key_insert_log_interval"`
		RemovalThreshold     int      `json:"removal_threshold"`
		ReadBatchDelay       Duration `json:"read_batch_delay"`
		BatchPurgeSize       int      `json:"batch_purge_size"`
		PurgeBatchDelay      Duration `json:"purge_batch_delay"`
		AbortOnScanError     bool     `json:"abort_on_scan_error"`
	} `json:"purge,omitempty"`

	Storage struct {
		Redis struct {
			URL          string   `json:"url"`
			DialTimeout  Duration `json:"dial_timeout"`
			ReadTimeout  Duration `json:"read_timeout"`
			WriteTimeout Duration `json:"write_timeout"`
		} `json:"redis,omitempty"`

		Checkpoint struct {
			Path string `json:"path"`
		} `json:"checkpoint,omitempty"`
	} `json:"storage,omitempty"`

	Metrics struct {
		Address string `json:"address"`
	} `json:"metrics,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		KeyPattern: jsonCfg.KeyPattern,
		Purge: Purge{
			BatchReadSize:        jsonCfg.Purge.BatchReadSize,
			KeyInsertLogInterval: jsonCfg.Purge.KeyInsertLogInterval,
			RemovalThreshold:     jsonCfg.Purge.RemovalThreshold,
			ReadBatchDelay:       time.Duration(jsonCfg.Purge.ReadBatchDelay),
			BatchPurgeSize:       jsonCfg.Purge.BatchPurgeSize,
			PurgeBatchDelay:      time.Duration(jsonCfg.Purge.PurgeBatchDelay),
			AbortOnScanError:     jsonCfg.Purge.AbortOnScanError,
		},
		Storage: Storage{
			Redis: Redis{
				URL:          jsonCfg.Storage.Redis.URL,
				DialTimeout:  time.Duration(jsonCfg.Storage.Redis.DialTimeout),
				ReadTimeout:  time.Duration(jsonCfg.Storage.Redis.ReadTimeout),
				WriteTimeout: time.Duration(jsonCfg.Storage.Redis.WriteTimeout),
			},
			Checkpoint: Checkpoint{
				Path: jsonCfg.Storage.Checkpoint.Path,
			},
		},
		Metrics: Metrics{
			Address: jsonCfg.Metrics.Address,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
