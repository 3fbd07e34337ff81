// Package metrics holds the prometheus collectors of the directory
// processes.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	wiretapFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "empdir",
			Subsystem: "wiretap",
			Name:      "frames_total",
			Help:      "Messages captured by the gRPC wire tap.",
		},
		[]string{"direction"},
	)
	wiretapFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "empdir",
			Subsystem: "wiretap",
			Name:      "failures_total",
			Help:      "Wire tap captures that failed and were skipped.",
		},
		[]string{"direction", "stage"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "empdir",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "empdir",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register adds the collectors to the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(wiretapFrames, wiretapFailures, httpRequests, httpDuration)
	})
}

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordWiretapFrame counts a captured message.
func RecordWiretapFrame(direction string) {
	Register()
	wiretapFrames.WithLabelValues(direction).Inc()
}

// RecordWiretapFailure counts a capture that failed at stage
// ("encode" or "sink").
func RecordWiretapFailure(direction, stage string) {
	Register()
	wiretapFailures.WithLabelValues(direction, stage).Inc()
}

// RecordHTTPRequest counts a served HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	Register()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, route, statusLabel).Inc()
	httpDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}
