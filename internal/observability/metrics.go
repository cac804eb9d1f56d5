// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package observability provides Prometheus metrics for marketplace builds.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
)

// Manifest outcomes recorded by discovery.
const (
	OutcomeAccepted        = "accepted"
	OutcomeUnreadable      = "unreadable"
	OutcomeInvalidJSON     = "invalid_json"
	OutcomeIntegrityFailed = "integrity_failed"
	OutcomeSchemaFailed    = "schema_failed"
)

// Metrics contains the marketplace discovery metrics.
type Metrics struct {
	ManifestsTotal    *prometheus.CounterVec
	WarningsTotal     prometheus.Counter
	DiscoveryDuration prometheus.Histogram
	AcceptedPlugins   prometheus.Gauge
}

// NewMetrics creates and registers discovery metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ManifestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketplace_manifests_total",
				Help: "Total number of plugin manifests processed by outcome",
			},
			[]string{"outcome"},
		),
		WarningsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_validation_warnings_total",
			Help: "Total number of schema warnings on accepted plugins",
		}),
		DiscoveryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketplace_discovery_duration_seconds",
			Help:    "Histogram of plugin discovery run latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		AcceptedPlugins: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marketplace_accepted_plugins",
			Help: "Number of plugins accepted by the most recent discovery run",
		}),
	}

	reg.MustRegister(m.ManifestsTotal, m.WarningsTotal, m.DiscoveryDuration, m.AcceptedPlugins)
	return m
}

// RecordManifest counts one processed manifest. A nil receiver is a no-op.
func (m *Metrics) RecordManifest(outcome string) {
	if m == nil {
		return
	}
	m.ManifestsTotal.WithLabelValues(outcome).Inc()
}

// RecordWarnings counts schema warnings. A nil receiver is a no-op.
func (m *Metrics) RecordWarnings(n int) {
	if m == nil || n == 0 {
		return
	}
	m.WarningsTotal.Add(float64(n))
}

// RecordRun records a completed discovery run. A nil receiver is a no-op.
func (m *Metrics) RecordRun(duration time.Duration, accepted int) {
	if m == nil {
		return
	}
	m.DiscoveryDuration.Observe(duration.Seconds())
	m.AcceptedPlugins.Set(float64(accepted))
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return oops.Code("METRICS_WRITE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
