package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	reclassifyTotal    *prometheus.CounterVec
	reclassifyDuration *prometheus.HistogramVec
	reclassifyInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	reclassifyTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docshield",
			Subsystem: "worker",
			Name:      "reclassify_total",
			Help:      "Total reclassification attempts by status.",
		},
		[]string{"service", "status"},
	)
	reclassifyDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docshield",
			Subsystem: "worker",
			Name:      "reclassify_duration_seconds",
			Help:      "Reclassification duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	reclassifyInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docshield",
			Subsystem: "worker",
			Name:      "reclassify_in_flight",
			Help:      "Number of in-flight reclassification tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(reclassifyTotal, reclassifyDuration, reclassifyInFlight)

	return &WorkerMetrics{
		registry:           registry,
		reclassifyTotal:    reclassifyTotal,
		reclassifyDuration: reclassifyDuration,
		reclassifyInFlight: reclassifyInFlight,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartReclassify() {
	m.reclassifyInFlight.Inc()
}

func (m *WorkerMetrics) FinishReclassify(service string, duration time.Duration, err error) {
	m.reclassifyInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.reclassifyTotal.WithLabelValues(service, status).Inc()
	m.reclassifyDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}
