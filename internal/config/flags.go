package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses all configuration flags from args (without the program
// name). A key pattern may also be given as the first positional argument.
//
// Flags:
//
//	-pattern key pattern, e.g. "user:*"
//	-c/-config json file path with configs
//	-batch-read-size SCAN COUNT hint
//	-key-insert-log-interval keys between progress log entries
//	-removal-threshold max keys collected per scan pass
//	-read-batch-delay delay after each scan page (e.g. "100ms", "0:00:00:00.1000000")
//	-batch-purge-size keys per DEL request
//	-purge-batch-delay delay after each DEL request
//	-abort-on-scan-error fail the session on a scan error
//	-redis-url redis connection string
//	-checkpoint checkpoint file path
//	-metrics-address prometheus endpoint host:port
//	-log-level debug|info|warn|error
//
// The returned copiers re-apply the zero-meaningful options that were given
// explicitly; see [explicitField].
func parseFlags(args []string) (*StructuredConfig, []func(dst, src *StructuredConfig), error) {
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("purger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.KeyPattern, "pattern", "", "Key pattern, e.g. user:*")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	fs.IntVar(&cfg.Purge.BatchReadSize, "batch-read-size", 0, "Keys requested per SCAN page")
	fs.IntVar(&cfg.Purge.KeyInsertLogInterval, "key-insert-log-interval", 0, "Keys between progress log entries")
	fs.IntVar(&cfg.Purge.RemovalThreshold, "removal-threshold", 0, "Max keys collected per scan pass")
	fs.Func("read-batch-delay", "Delay after each scan page", durationFlag(&cfg.Purge.ReadBatchDelay))
	fs.IntVar(&cfg.Purge.BatchPurgeSize, "batch-purge-size", 0, "Keys per DEL request")
	fs.Func("purge-batch-delay", "Delay after each DEL request", durationFlag(&cfg.Purge.PurgeBatchDelay))
	fs.BoolVar(&cfg.Purge.AbortOnScanError, "abort-on-scan-error", false, "Fail the session when a scan page fails")

	fs.StringVar(&cfg.Storage.Redis.URL, "redis-url", "", "Redis connection string")
	fs.StringVar(&cfg.Storage.Checkpoint.Path, "checkpoint", "", "Checkpoint file path")
	fs.StringVar(&cfg.Metrics.Address, "metrics-address", "", "Prometheus endpoint host:port")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if cfg.KeyPattern == "" && fs.NArg() > 0 {
		cfg.KeyPattern = fs.Arg(0)
	}

	return cfg, explicitFlags(fs), nil
}

func durationFlag(dst *time.Duration) func(string) error {
	return func(s string) error {
		d, err := ParseDuration(s)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
}
