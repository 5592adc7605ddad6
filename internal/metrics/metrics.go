// Package metrics exports check cycle results as Prometheus metrics.
//
// Runs are short-lived, so metrics are not served over HTTP. Instead each
// cycle rewrites a file in the text exposition format, to be picked up by
// the node_exporter textfile collector.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jpalmerr/sefazwatch"
)

const namespace = "sefazwatch"

// Textfile publishes cycle metrics to a .prom file.
//
// Textfile uses its own registry, so nothing leaks into (or from) the
// global default registry.
type Textfile struct {
	path     string
	registry *prometheus.Registry

	regionActive  *prometheus.GaugeVec
	lastRun       prometheus.Gauge
	lastSuccess   prometheus.Gauge
	lastDuration  prometheus.Gauge
	lastChanges   prometheus.Gauge
	lastSkipped   prometheus.Gauge
	lastDelivered prometheus.Gauge
	lastFailed    prometheus.Gauge
}

// NewTextfile creates a [Textfile] writing to path.
func NewTextfile(path string) (*Textfile, error) {
	if path == "" {
		return nil, errors.New("metrics: empty textfile path")
	}

	t := &Textfile{
		path:     path,
		registry: prometheus.NewRegistry(),
	}

	t.regionActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "region_contingency_active",
		Help:      "Whether contingency is active for the region (1) or not (0)",
	}, []string{"region"})
	t.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the start of the last check",
	})
	t.lastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_success",
		Help:      "Whether the last check completed without error",
	})
	t.lastDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_duration_seconds",
		Help:      "Duration of the last check",
	})
	t.lastChanges = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_changes",
		Help:      "Number of region changes notified by the last check",
	})
	t.lastSkipped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_rows_skipped",
		Help:      "Number of malformed table rows skipped by the last check",
	})
	t.lastDelivered = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_notifications_delivered",
		Help:      "Number of notifications delivered by the last check",
	})
	t.lastFailed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_notifications_failed",
		Help:      "Number of notifications that failed in the last check",
	})

	t.registry.MustRegister(
		t.regionActive, t.lastRun, t.lastSuccess, t.lastDuration,
		t.lastChanges, t.lastSkipped, t.lastDelivered, t.lastFailed,
	)

	return t, nil
}

// Path returns the textfile location.
func (t *Textfile) Path() string {
	return t.path
}

// Publish updates the gauges from one cycle and rewrites the textfile.
// Region gauges reflect state; when state is nil they are left out.
func (t *Textfile) Publish(report *sefazwatch.Report, state sefazwatch.State, runErr error) error {
	t.regionActive.Reset()
	for code, rec := range state {
		t.regionActive.WithLabelValues(code).Set(boolToFloat(rec.Active))
	}

	if report != nil {
		t.lastRun.Set(float64(report.StartedAt.Unix()))
		t.lastDuration.Set(report.Duration.Seconds())
		t.lastChanges.Set(float64(len(report.Changes)))
		t.lastSkipped.Set(float64(report.Skipped))
		t.lastDelivered.Set(float64(report.Delivered))
		t.lastFailed.Set(float64(report.Failed))
	}
	t.lastSuccess.Set(boolToFloat(runErr == nil))

	if err := prometheus.WriteToTextfile(t.path, t.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
