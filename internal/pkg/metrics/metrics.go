package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector provides application metrics collection
type Collector struct {
	registry *prometheus.Registry

	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Pipeline Metrics
	PipelineRunsTotal    *prometheus.CounterVec
	PipelineRunDuration  prometheus.Histogram
	PipelineResultsCount prometheus.Histogram

	// Source Metrics
	SourceLoadsTotal *prometheus.CounterVec

	// Registration Metrics
	RegistrationsPublished prometheus.Counter
	RegistrationsProcessed *prometheus.CounterVec

	ActiveSessions prometheus.Gauge
}

// NewCollector creates a collector backed by its own registry.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
			},
			[]string{"route"},
		),

		PipelineRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "finder_pipeline_runs_total",
				Help:      "Completed finder pipeline runs by outcome",
			},
			[]string{"outcome"},
		),

		PipelineRunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "finder_pipeline_duration_seconds",
				Help:      "Duration of finder pipeline runs in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
		),

		PipelineResultsCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "finder_pipeline_results",
				Help:      "Number of water points left after filtering",
				Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),

		SourceLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_loads_total",
				Help:      "Water point source loads by origin (cache, source) and result",
			},
			[]string{"origin", "result"},
		),

		RegistrationsPublished: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_published_total",
				Help:      "Water point registrations accepted and queued",
			},
		),

		RegistrationsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registrations_processed_total",
				Help:      "Queued registrations handled by the worker by result",
			},
			[]string{"result"},
		),

		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "finder_active_sessions",
				Help:      "Number of live finder sessions",
			},
		),
	}
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(route, method string, status int, duration time.Duration) {
	c.APIRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.APIRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObservePipelineRun records a finished pipeline run
func (c *Collector) ObservePipelineRun(outcome string, duration time.Duration, results int) {
	c.PipelineRunsTotal.WithLabelValues(outcome).Inc()
	c.PipelineRunDuration.Observe(duration.Seconds())
	if outcome == "ok" {
		c.PipelineResultsCount.Observe(float64(results))
	}
}

// RecordSourceLoad records where a water point listing was loaded from
func (c *Collector) RecordSourceLoad(origin string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.SourceLoadsTotal.WithLabelValues(origin, result).Inc()
}

func (c *Collector) RecordRegistrationPublished() {
	c.RegistrationsPublished.Inc()
}

func (c *Collector) RecordRegistrationProcessed(result string) {
	c.RegistrationsProcessed.WithLabelValues(result).Inc()
}

func (c *Collector) SetActiveSessions(n int) {
	c.ActiveSessions.Set(float64(n))
}

// Registry exposes the underlying registry (tests, custom exporters).
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
