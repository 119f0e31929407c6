package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless another namespace is given.
const DefaultNamespace = "hlog"

// PrometheusCollector implements Collector with Prometheus counters:
//   - <namespace>_records_emitted_total{severity}
//   - <namespace>_records_filtered_total{severity}
//   - <namespace>_records_dropped_total{severity,reason}
type PrometheusCollector struct {
	registry *prometheus.Registry
	emitted  *prometheus.CounterVec
	filtered *prometheus.CounterVec
	dropped  *prometheus.CounterVec
}

// NewPrometheusCollector creates the counters and registers them in a fresh
// registry. An empty namespace means DefaultNamespace.
func NewPrometheusCollector(namespace string) (*PrometheusCollector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	registry := prometheus.NewRegistry()

	emitted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_emitted_total",
			Help:      "Total number of log records handed to the output handler",
		},
		[]string{"severity"},
	)
	filtered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_filtered_total",
			Help:      "Total number of log records below the effective threshold",
		},
		[]string{"severity"},
	)
	dropped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_dropped_total",
			Help:      "Total number of admitted log records lost before reaching the sink",
		},
		[]string{"severity", "reason"},
	)

	// Register instead of MustRegister: a duplicate name is reported, not panicked on.
	for _, c := range []prometheus.Collector{emitted, filtered, dropped} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering metric: %w", err)
		}
	}

	return &PrometheusCollector{
		registry: registry,
		emitted:  emitted,
		filtered: filtered,
		dropped:  dropped,
	}, nil
}

// Registry exposes the registry holding the counters, e.g. for promhttp.HandlerFor.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordEmitted increments the emitted counter.
func (c *PrometheusCollector) RecordEmitted(severity string) {
	c.emitted.WithLabelValues(severity).Inc()
}

// RecordFiltered increments the filtered counter.
func (c *PrometheusCollector) RecordFiltered(severity string) {
	c.filtered.WithLabelValues(severity).Inc()
}

// RecordDropped increments the dropped counter for reason.
func (c *PrometheusCollector) RecordDropped(severity, reason string) {
	c.dropped.WithLabelValues(severity, reason).Inc()
}
