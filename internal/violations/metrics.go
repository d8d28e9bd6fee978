package violations

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	fetches  *prometheus.CounterVec
	toggles  *prometheus.CounterVec
	pending  prometheus.Gauge
	fetchDur prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "violations_client",
			Name:      "fetches_total",
			Help:      "Full collection fetches by outcome",
		}, []string{"status"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "violations_client",
			Name:      "toggles_total",
			Help:      "Status toggles by outcome",
		}, []string{"status"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "violations_client",
			Name:      "pending_updates",
			Help:      "Toggles currently waiting for the service",
		}),
		fetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "violations_client",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent waiting for the violation list",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.fetches, m.toggles, m.pending, m.fetchDur)
	}
	return m
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
