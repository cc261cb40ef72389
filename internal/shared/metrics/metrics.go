package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	loginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"result"})

	registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Registration attempts by outcome",
	}, []string{"result"})

	collectionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_collection_failures_total",
		Help: "Resume child collections degraded to empty after a storage error",
	}, []string{"collection"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		loginAttempts,
		registrations,
		collectionFailures,
		requestDuration,
		collectors.NewGoCollector(),
	)
}

// IncLogin records a login attempt outcome ("success", "system", "invalid", "error").
func IncLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// IncRegistration records a registration outcome ("success", "exists", "invalid", "error").
func IncRegistration(result string) {
	registrations.WithLabelValues(result).Inc()
}

// IncCollectionFailure records a resume collection that fell back to empty.
func IncCollectionFailure(collection string) {
	collectionFailures.WithLabelValues(collection).Inc()
}

// CollectionFailureCounter returns the failure counter for one collection.
func CollectionFailureCounter(collection string) prometheus.Counter {
	return collectionFailures.WithLabelValues(collection)
}

// ObserveRequest records the latency of a completed request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
