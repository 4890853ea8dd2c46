// Package metrics exposes prometheus counters for sweeps and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Clapiton/socials/pkg/domain"
)

const namespace = "socials"

// Metrics holds its own registry, so several instances can live in one process (tests)
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	sweeps          *prometheus.CounterVec
	posts           *prometheus.CounterVec
	analyzed        *prometheus.CounterVec
	leads           prometheus.Counter
}

// New makes metrics with all collectors registered
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for inbound HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests.",
		}, []string{"method", "path", "status"}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Collection and analysis sweeps by type and result.",
		}, []string{"type", "result"}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collected_posts_total",
			Help:      "Fetched posts by platform and outcome.",
		}, []string{"platform", "outcome"}),
		analyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyzed_posts_total",
			Help:      "Analyzed posts by outcome.",
		}, []string{"outcome"}),
		leads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_created_total",
			Help:      "Leads promoted from analyzed posts.",
		}),
	}
	m.registry.MustRegister(m.requestDuration, m.requestTotal, m.sweeps, m.posts, m.analyzed, m.leads)
	return m
}

// Handler returns an HTTP handler for exposing metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency of requests. Path label is the matched
// route pattern, unmatched requests share one label.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(rw.status)
		m.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

// RecordCollect counts one collection sweep and its per-adapter outcomes
func (m *Metrics) RecordCollect(stats []domain.CollectionStats, err error) {
	m.sweeps.WithLabelValues(domain.TaskCollect, result(err)).Inc()
	for _, st := range stats {
		m.posts.WithLabelValues(st.Platform, "inserted").Add(float64(st.Inserted))
		m.posts.WithLabelValues(st.Platform, "duplicate").Add(float64(st.Duplicates))
		m.posts.WithLabelValues(st.Platform, "filtered").Add(float64(st.Filtered))
		m.posts.WithLabelValues(st.Platform, "error").Add(float64(st.Errors))
	}
}

// RecordAnalyze counts one analysis sweep and its outcomes
func (m *Metrics) RecordAnalyze(stats domain.AnalysisStats, err error) {
	m.sweeps.WithLabelValues(domain.TaskAnalyze, result(err)).Inc()
	m.analyzed.WithLabelValues("sentiment_skipped").Add(float64(stats.SentimentSkipped))
	m.analyzed.WithLabelValues("frustrated").Add(float64(stats.Frustrated))
	m.analyzed.WithLabelValues("not_frustrated").Add(float64(stats.NotFrustrated))
	m.analyzed.WithLabelValues("error").Add(float64(stats.Errors))
	m.leads.Add(float64(stats.LeadsCreated))
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "completed"
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
