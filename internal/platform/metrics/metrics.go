// Package metrics exposes Prometheus instrumentation for the scheduler.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for one process.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	cacheComputation  *prometheus.HistogramVec
	reviewsTotal      *prometheus.CounterVec
	eventFailures     prometheus.Counter
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stats_cache_lookups_total",
			Help: "Statistics cache lookups by result.",
		}, []string{"result"}),
		cacheComputation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stats_cache_computation_seconds",
			Help:    "Time spent computing statistics on cache misses.",
			Buckets: prometheus.DefBuckets,
		}, []string{"result"}),
		reviewsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reviews_total",
			Help: "Recorded reviews by personalization strategy and outcome.",
		}, []string{"strategy", "successful"}),
		eventFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "event_publish_failures_total",
			Help: "Domain events that could not be published.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.cacheLookups,
		m.cacheComputation,
		m.reviewsTotal,
		m.eventFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, ht := range []domain.HitType{domain.CacheHit, domain.CacheMiss, domain.CacheExpired} {
		m.cacheLookups.WithLabelValues(string(ht))
	}

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records a statistics cache lookup.
func (m *Metrics) Observe(_ context.Context, metric domain.CacheMetric) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(string(metric.HitType)).Inc()
	if metric.ComputationTimeMs != nil {
		d := time.Duration(*metric.ComputationTimeMs) * time.Millisecond
		m.cacheComputation.WithLabelValues(string(metric.HitType)).Observe(d.Seconds())
	}
}

// ReviewRecorded counts a committed review.
func (m *Metrics) ReviewRecorded(strategy string, successful bool) {
	if m == nil {
		return
	}
	m.reviewsTotal.WithLabelValues(strategy, strconv.FormatBool(successful)).Inc()
}

// EventPublishFailed counts an event that was dropped.
func (m *Metrics) EventPublishFailed() {
	if m == nil {
		return
	}
	m.eventFailures.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and durations labelled by route pattern.
// routeOf extracts the pattern after the request was served.
func (m *Metrics) Middleware(routeOf func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			if m == nil {
				return
			}
			route := routeOf(r)
			if route == "" {
				route = "unmatched"
			}
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
