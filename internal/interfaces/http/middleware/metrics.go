package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_http_requests_total",
		Help: "HTTP requests handled, by method, route and status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "router_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	transfersDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_transfers_dispatched_total",
		Help: "Outbound transfers dispatched, by protocol",
	}, []string{"protocol"})

	settlementsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_settlements_total",
		Help: "Inbound settlements handled, by outcome",
	}, []string{"outcome"})
)

// CountTransferDispatched records a dispatched outbound transfer.
func CountTransferDispatched(protocol string) {
	transfersDispatched.WithLabelValues(protocol).Inc()
}

// CountSettlement records an inbound settlement outcome.
func CountSettlement(outcome string) {
	settlementsHandled.WithLabelValues(outcome).Inc()
}

// MetricsMiddleware records request counts and latency per route. The route
// label uses the gin template path so path parameters do not explode
// cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(v)
		}))

		c.Next()

		timer.ObserveDuration()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
