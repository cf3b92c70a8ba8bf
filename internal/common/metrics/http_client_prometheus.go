package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatusTransportError labels calls that never got a response.
const StatusTransportError = "error"

// HTTPClientPrometheusMetrics tracks calls to the backoffice gateway and the
// transaction detail API.
type HTTPClientPrometheusMetrics struct {
	callDuration *prometheus.HistogramVec
	retries      *prometheus.CounterVec
}

func newHTTPClientPrometheusMetrics(reg prometheus.Registerer) *HTTPClientPrometheusMetrics {
	m := &HTTPClientPrometheusMetrics{
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_call_duration_seconds",
				Help:    "Duration of backend calls in seconds, retries included.",
				Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 60},
			},
			[]string{"service", "method", "endpoint", "status_class"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_call_retries_total",
				Help: "Extra attempts made by the http client after a retryable response.",
			},
			[]string{"service", "endpoint"},
		),
	}

	reg.MustRegister(m.callDuration, m.retries)

	return m
}

// Record observes one logical call. statusCode 0 means no response was
// received, attempts counts the first try.
func (m *HTTPClientPrometheusMetrics) Record(duration time.Duration, service, method, endpoint string, statusCode, attempts int) {
	if m == nil {
		return
	}

	m.callDuration.WithLabelValues(service, method, endpoint, statusClass(statusCode)).
		Observe(duration.Seconds())

	if attempts > 1 {
		m.retries.WithLabelValues(service, endpoint).Add(float64(attempts - 1))
	}
}

func statusClass(code int) string {
	if code <= 0 {
		return StatusTransportError
	}
	return strconv.Itoa(code/100) + "xx"
}
