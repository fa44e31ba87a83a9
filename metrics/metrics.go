package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of requests issued to the storefront API.",
		},
		[]string{"code", "method", "endpoint"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of storefront API round trips in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	apiRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_api_requests_in_flight",
			Help: "Current number of storefront API requests awaiting a response.",
		},
	)
)

// ObserveRequest records one completed round trip. statusCode is 0 when the
// call failed before any response arrived.
func ObserveRequest(method, endpoint string, statusCode int, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(strconv.Itoa(statusCode), method, endpoint).Inc()
	apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RequestStarted() {
	apiRequestsInFlight.Inc()
}

func RequestFinished() {
	apiRequestsInFlight.Dec()
}
