// Package config provides configuration loading, merging, and validation
// facilities for the key purger.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON config file
//  3. Environment variables
//  4. Command-line flags
//
// The main entry point is [GetStructuredConfig]. Durations in every source
// are parsed by [ParseDuration]; malformed values fail at startup.
package config
