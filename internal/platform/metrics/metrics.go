package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics of the agent API.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// New creates and registers the metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers the metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diddht_http_request_duration_seconds",
			Help:    "Duration of agent API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diddht_http_requests_total",
			Help: "Total number of agent API requests by route and status",
		}, []string{"route", "method", "status"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}
