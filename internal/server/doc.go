// Package server runs the optional HTTP endpoint exposing Prometheus metrics
// and a liveness probe while a purge session is in progress.
package server
