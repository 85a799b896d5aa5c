// Package metrics holds the Prometheus collectors shared by the HTTP layer
// and the order workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gadgetstore"

var (
	// RequestDuration tracks how long each HTTP request takes, by method,
	// route and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Orders persisted by the checkout flow.",
	})

	// OrderLinesRejected counts cart lines dropped during order assembly, by reason.
	OrderLinesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "lines_rejected_total",
			Help:      "Cart lines skipped while assembling orders.",
		},
		[]string{"reason"},
	)

	OrderValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "total_amount",
		Help:      "Total amount of persisted orders.",
		Buckets:   []float64{1_000, 5_000, 10_000, 25_000, 50_000, 100_000, 250_000},
	})

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		OrdersCreated,
		OrderLinesRejected,
		OrderValue,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
