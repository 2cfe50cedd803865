package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "reveal_serve"

// serveMetrics exports build and live-reload activity of the serve command.
type serveMetrics struct {
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	reloadClients prometheus.Gauge
	reloadsSent   prometheus.Counter
}

func newServeMetrics(reg prometheus.Registerer) (*serveMetrics, error) {
	m := &serveMetrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "builds_total",
			Help:      "Count of wasm builds by result.",
		}, []string{"result"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "build_duration_seconds",
			Help:      "Latency of wasm builds.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
		reloadClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "livereload_clients",
			Help:      "Pages connected for live reload.",
		}),
		reloadsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reloads_sent_total",
			Help:      "Reload messages delivered to pages.",
		}),
	}
	for _, c := range []prometheus.Collector{m.builds, m.buildDuration, m.reloadClients, m.reloadsSent} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register serve metric: %w", err)
		}
	}
	return m, nil
}

func (m *serveMetrics) recordBuild(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(d.Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.builds.WithLabelValues(result).Inc()
}

func (m *serveMetrics) setClients(n int) {
	if m == nil {
		return
	}
	m.reloadClients.Set(float64(n))
}

func (m *serveMetrics) addReloads(n int) {
	if m == nil {
		return
	}
	m.reloadsSent.Add(float64(n))
}
