// Package metrics exposes Prometheus instrumentation for purge sessions.
//
// A nil *Collector is valid and records nothing, so services can be built
// without metrics in tests and when no endpoint is configured.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "key_purger"

// Pass sources.
const (
	SourceScan       = "scan"
	SourceCheckpoint = "checkpoint"
)

// Collector owns every purge metric and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	keysScanned prometheus.Counter
	keysDeleted prometheus.Counter
	batches     *prometheus.CounterVec
	scanErrors  prometheus.Counter
	passes      *prometheus.CounterVec
	pendingKeys prometheus.Gauge
}

// NewCollector registers all metrics in registry. If registry is nil a fresh
// one is created, with Go runtime and process collectors attached.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := &Collector{
		registry: registry,
		keysScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_scanned_total",
			Help:      "Keys collected by scan passes.",
		}),
		keysDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_deleted_total",
			Help:      "Keys reported as removed by the store.",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purge_batches_total",
			Help:      "Delete requests by result.",
		}, []string{"result"}),
		scanErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_errors_total",
			Help:      "Scan passes cut short by a store error.",
		}),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Purge passes by the origin of their key list.",
		}, []string{"source"}),
		pendingKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_keys",
			Help:      "Keys of the current pass not yet confirmed deleted.",
		}),
	}

	registry.MustRegister(c.keysScanned, c.keysDeleted, c.batches, c.scanErrors, c.passes, c.pendingKeys)

	return c
}

// Handler returns the exposition handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func (c *Collector) KeysScanned(n int) {
	if c == nil {
		return
	}
	c.keysScanned.Add(float64(n))
}

func (c *Collector) ScanFailed() {
	if c == nil {
		return
	}
	c.scanErrors.Inc()
}

// BatchSucceeded records one completed delete request.
func (c *Collector) BatchSucceeded(deleted int64) {
	if c == nil {
		return
	}
	c.batches.WithLabelValues("success").Inc()
	c.keysDeleted.Add(float64(deleted))
}

func (c *Collector) BatchFailed() {
	if c == nil {
		return
	}
	c.batches.WithLabelValues("failure").Inc()
}

// PassStarted records a pass whose key list came from source.
func (c *Collector) PassStarted(source string) {
	if c == nil {
		return
	}
	c.passes.WithLabelValues(source).Inc()
}

func (c *Collector) SetPending(n int) {
	if c == nil {
		return
	}
	c.pendingKeys.Set(float64(n))
}
