package service

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/MKhiriev/go-key-purger/internal/store"
)

func prometheusRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// counterValue sums every series of the named counter family.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		return sum
	}
	return 0
}

func newTempCheckpoint(t *testing.T) (store.CheckpointStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "purge.checkpoint")
	return store.NewCheckpointFileStorage(path, logger.Nop()), path
}

type staticID string

func (s staticID) Generate() string { return string(s) }
