package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by service, method, path and status",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	inventoryAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_adjustments_total",
			Help: "Inventory adjustments by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	danglingAdjustments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_dangling_adjustments_total",
			Help: "Remote inventory adjustments whose local write failed",
		},
	)
)

// HTTPMetrics records request counts and latency per route.
func HTTPMetrics(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequests.WithLabelValues(service, c.Request.Method, path,
			strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(service, c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// TrackAdjustment counts one reserve/release attempt by outcome.
func TrackAdjustment(operation, outcome string) {
	inventoryAdjustments.WithLabelValues(operation, outcome).Inc()
}

// TrackDangling counts one dangling adjustment. A non-zero value is the
// primary operator signal that reconciliation is needed.
func TrackDangling() {
	danglingAdjustments.Inc()
}
