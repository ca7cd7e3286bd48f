// Package metrics wraps Prometheus collectors for the intake service: HTTP
// request telemetry plus counters for the wizard's domain events.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus collectors.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	pageSavesTotal    *prometheus.CounterVec
	oasysImportsTotal *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
}

// NewCollector creates and registers the service collectors.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "intake"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	c.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method", "path"},
	)

	c.pageSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "page_saves_total",
			Help:      "Total number of page save attempts",
		},
		[]string{"task", "result"},
	)

	c.oasysImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "oasys_imports_total",
			Help:      "Total number of OASys import lookups",
		},
		[]string{"result"},
	)

	c.submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Total number of application submissions",
		},
		[]string{"result"},
	)

	c.registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.pageSavesTotal,
		c.oasysImportsTotal,
		c.submissionsTotal,
	)

	return c
}

// Registry returns the Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordPageSave records a page save attempt.
func (c *Collector) RecordPageSave(task string, err error) {
	c.pageSavesTotal.WithLabelValues(task, result(err)).Inc()
}

// RecordOasysImport records an OASys lookup outcome.
func (c *Collector) RecordOasysImport(found bool) {
	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	c.oasysImportsTotal.WithLabelValues(outcome).Inc()
}

// RecordSubmission records a submission attempt.
func (c *Collector) RecordSubmission(err error) {
	c.submissionsTotal.WithLabelValues(result(err)).Inc()
}

// InstrumentHandler wraps an HTTP handler with request counting and latency
// observation. Path labels are canonicalized so per-application URLs do not
// explode the label space.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		c.requestsTotal.WithLabelValues(r.Method, path, http.StatusText(rec.status)).Inc()
		c.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// canonicalPath replaces the variable segments of application URLs with
// placeholders.
func canonicalPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] != "applications" {
		return path
	}
	if len(parts) > 1 {
		parts[1] = ":id"
	}
	// /applications/:id/tasks/:task/pages/:page
	if len(parts) > 3 && parts[2] == "tasks" {
		parts[3] = ":task"
	}
	if len(parts) > 5 && parts[4] == "pages" {
		parts[5] = ":page"
	}
	return "/" + strings.Join(parts, "/")
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
