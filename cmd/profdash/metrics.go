package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics holds the collectors for backend fetches and page renders.
// A nil *metrics is valid and records nothing.
type metrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	renders       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profdash",
			Name:      "fetch_total",
			Help:      "Backend fetches by endpoint and result.",
		}, []string{"endpoint", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "profdash",
			Name:      "fetch_duration_seconds",
			Help:      "Backend fetch latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profdash",
			Name:      "render_total",
			Help:      "Dashboard renders by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.fetches, m.fetchDuration, m.renders)
	return m
}

// newRegistry returns a registry with the process and runtime collectors
// plus the dashboard's own metrics.
func newRegistry() (*prometheus.Registry, *metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, newMetrics(reg)
}

func (m *metrics) observeFetch(endpoint string, err error, took time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(endpoint, result(err)).Inc()
	m.fetchDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (m *metrics) observeRender(err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
