package middleware

import (
	"strings"
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devlink_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement type.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devlink_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The instance is shared: the underlying collectors can only be
// registered once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the request-instrumentation handler for the
// Prometheus middleware created by InitMetrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

// ObserveQuery records latency for a SQL statement. The operation label is the
// leading keyword of the statement (SELECT, INSERT, UPDATE, DELETE, other).
func ObserveQuery(sql string, seconds float64) {
	op := "other"
	if i := strings.IndexByte(sql, ' '); i > 0 {
		switch strings.ToUpper(sql[:i]) {
		case "SELECT", "INSERT", "UPDATE", "DELETE":
			op = strings.ToLower(sql[:i])
		}
	}
	DatabaseQueryLatency.WithLabelValues(op).Observe(seconds)
}
