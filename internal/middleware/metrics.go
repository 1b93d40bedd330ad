package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationsProduced counts notification rows inserted by event type.
	NotificationsProduced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_notifications_produced_total",
		Help: "Total number of notification rows produced by event type",
	}, []string{"event"})

	// SwapTransitions counts swap request state transitions.
	SwapTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap request state transitions",
	}, []string{"to_status"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register on the default registry, so the instance
// is created once and shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the Fiber handler recording request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
