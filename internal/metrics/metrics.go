package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the drinklog collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drinklog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "drinklog",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path"},
	)

	catalogFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drinklog",
			Subsystem: "catalog",
			Name:      "fetches_total",
			Help:      "Catalog provider attempts by outcome.",
		},
		[]string{"provider", "outcome"},
	)

	entriesLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "drinklog",
			Subsystem: "ledger",
			Name:      "entries_logged_total",
			Help:      "Drinks logged by category.",
		},
		[]string{"category"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		catalogFetches,
		entriesLogged,
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler counts and times every request except scrapes of /metrics.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		path := CanonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordCatalogFetch counts one provider attempt. err == nil is a success.
func RecordCatalogFetch(provider string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	catalogFetches.WithLabelValues(provider, outcome).Inc()
}

func RecordEntryLogged(category string) {
	entriesLogged.WithLabelValues(category).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// CanonicalPath collapses entry IDs so label cardinality stays bounded.
func CanonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if parts[0] == "entries" && len(parts) > 1 {
		parts[1] = ":id"
	}
	return "/" + strings.Join(parts, "/")
}
