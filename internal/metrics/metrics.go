package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the order service.
type Metrics struct {
	Requests     *prometheus.CounterVec
	LatencyMS    *prometheus.HistogramVec
	OrdersPlaced prometheus.Counter
}

// New registers and returns the service metrics.
func New(service string) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pizza",
		Subsystem: service,
		Name:      "orders_placed_total",
		Help:      "Total number of successfully placed orders.",
	})

	prometheus.MustRegister(requests, latency, ordersPlaced)
	return &Metrics{Requests: requests, LatencyMS: latency, OrdersPlaced: ordersPlaced}
}

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
