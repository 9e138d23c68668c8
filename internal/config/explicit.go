package config

import (
	"flag"
	"os"
)

// explicitField is an option whose zero value is meaningful. mergo skips
// zero source fields, so a layer that sets one of these explicitly copies
// it over the merged result itself.
type explicitField struct {
	flag string
	env  string
	copy func(dst, src *StructuredConfig)
}

var explicitFields = []explicitField{
	{
		flag: "abort-on-scan-error",
		env:  "PURGE_ABORT_ON_SCAN_ERROR",
		copy: func(dst, src *StructuredConfig) { dst.Purge.AbortOnScanError = src.Purge.AbortOnScanError },
	},
	{
		flag: "read-batch-delay",
		env:  "PURGE_READ_BATCH_DELAY",
		copy: func(dst, src *StructuredConfig) { dst.Purge.ReadBatchDelay = src.Purge.ReadBatchDelay },
	},
	{
		flag: "purge-batch-delay",
		env:  "PURGE_PURGE_BATCH_DELAY",
		copy: func(dst, src *StructuredConfig) { dst.Purge.PurgeBatchDelay = src.Purge.PurgeBatchDelay },
	},
	{
		flag: "metrics-address",
		env:  "METRICS_ADDRESS",
		copy: func(dst, src *StructuredConfig) { dst.Metrics.Address = src.Metrics.Address },
	},
}

// explicitEnv returns the copiers of the fields set by non-empty
// environment variables.
func explicitEnv() []func(dst, src *StructuredConfig) {
	var copiers []func(dst, src *StructuredConfig)
	for _, f := range explicitFields {
		if v, ok := os.LookupEnv(f.env); ok && v != "" {
			copiers = append(copiers, f.copy)
		}
	}
	return copiers
}

// explicitFlags returns the copiers of the fields given on the command line.
func explicitFlags(fs *flag.FlagSet) []func(dst, src *StructuredConfig) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var copiers []func(dst, src *StructuredConfig)
	for _, f := range explicitFields {
		if set[f.flag] {
			copiers = append(copiers, f.copy)
		}
	}
	return copiers
}
