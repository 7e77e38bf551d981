package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the pipeline and the HTTP
// surface, registered on a dedicated registry so tests can create
// independent instances.
type Metrics struct {
	registry *prometheus.Registry

	PipelineLoads        *prometheus.CounterVec
	RowsLoaded           prometheus.Counter
	InvalidRangesDropped prometheus.Counter
	OutliersRemoved      prometheus.Counter
	CacheHits            prometheus.Counter
	LoadDuration         prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		PipelineLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sgpulse",
			Subsystem: "pipeline",
			Name:      "loads_total",
			Help:      "Dataset loads by outcome (success or error).",
		}, []string{"outcome"}),
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sgpulse",
			Subsystem: "pipeline",
			Name:      "rows_loaded_total",
			Help:      "Postings retained after cleaning across all loads.",
		}),
		InvalidRangesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sgpulse",
			Subsystem: "pipeline",
			Name:      "invalid_ranges_dropped_total",
			Help:      "Rows dropped because salary_minimum exceeded salary_maximum.",
		}),
		OutliersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sgpulse",
			Subsystem: "pipeline",
			Name:      "outliers_removed_total",
			Help:      "Rows dropped by the plausible salary band filter.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sgpulse",
			Subsystem: "pipeline",
			Name:      "cache_hits_total",
			Help:      "Loads served from the in-memory table cache.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sgpulse",
			Subsystem: "pipeline",
			Name:      "load_duration_seconds",
			Help:      "Wall time of full dataset loads.",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sgpulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sgpulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.PipelineLoads,
		m.RowsLoaded,
		m.InvalidRangesDropped,
		m.OutliersRemoved,
		m.CacheHits,
		m.LoadDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLoad records one pipeline load attempt.
func (m *Metrics) ObserveLoad(err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.PipelineLoads.WithLabelValues(outcome).Inc()
	m.LoadDuration.Observe(elapsed.Seconds())
}
