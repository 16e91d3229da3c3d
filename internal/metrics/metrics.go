// Package metrics records the outcome of a run and writes it as a
// Prometheus textfile, as consumed by the node-exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/simplesurance/verbump/internal/logfields"
)

const loggerName = "metrics"

const metricNamespace = "verbump"

const (
	runsMetricName        = "runs_total"
	lastRunMetricName     = "last_run_timestamp_seconds"
	versionInfoMetricName = "version_info"
)

const (
	resultLabel  = "result"
	versionLabel = "version"
	kindLabel    = "kind"
)

// Collector holds the metrics of a single run in its own registry.
type Collector struct {
	logger      *zap.Logger
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	lastRun     prometheus.Gauge
	versionInfo *prometheus.GaugeVec

	now func() time.Time
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		logger:   zap.L().Named(loggerName),
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      runsMetricName,
				Help:      "count of runs by result",
			},
			[]string{resultLabel},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      lastRunMetricName,
				Help:      "unix timestamp of the last run",
			},
		),
		versionInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      versionInfoMetricName,
				Help:      "version the manifest was bumped to, always 1",
			},
			[]string{versionLabel, kindLabel},
		),
		now: time.Now,
	}
}

func (c *Collector) logGetMetricFailed(metricName string, err error) {
	c.logger.Warn(
		"could not record metric",
		zap.String("metric", metricName),
		logfields.Event("recording_metric_failed"),
		zap.Error(err),
	)
}

// RecordRun records a finished run with the given result.
func (c *Collector) RecordRun(result string) {
	cnt, err := c.runs.GetMetricWith(prometheus.Labels{resultLabel: result})
	if err != nil {
		c.logGetMetricFailed(runsMetricName, err)
		return
	}

	cnt.Inc()
	c.lastRun.Set(float64(c.now().Unix()))
}

// RecordVersion records the version that was set and the kind of increment.
func (c *Collector) RecordVersion(version, kind string) {
	g, err := c.versionInfo.GetMetricWith(prometheus.Labels{
		versionLabel: version,
		kindLabel:    kind,
	})
	if err != nil {
		c.logGetMetricFailed(versionInfoMetricName, err)
		return
	}

	g.Set(1)
}

// WriteFile writes all metrics in the text exposition format to path.
// The file is written atomically.
func (c *Collector) WriteFile(path string) error {
	err := prometheus.WriteToTextfile(path, c.registry)
	if err != nil {
		return err
	}

	c.logger.Debug(
		"metrics written",
		logfields.Event("metrics_written"),
		zap.String("path", path),
	)

	return nil
}
