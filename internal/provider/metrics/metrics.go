package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identifier provisioning.
type Metrics struct {
	// Identifiers published successfully, by network
	IdentifiersCreated *prometheus.CounterVec

	// Publish failures by network
	PublishFailures *prometheus.CounterVec

	// Duration of the DHT put, by network and outcome
	PublishLatency *prometheus.HistogramVec

	// Mutation calls rejected by policy, by operation
	RejectedOperations *prometheus.CounterVec

	// Identity keys created, by KMS
	KeysCreated *prometheus.CounterVec
}

// New creates the provider metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates the provider metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		IdentifiersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diddht_identifiers_created_total",
			Help: "Total number of did:dht identifiers created and published",
		}, []string{"network"}),

		PublishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diddht_publish_failures_total",
			Help: "Total number of resolution records the DHT failed to store",
		}, []string{"network"}),

		PublishLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diddht_publish_duration_seconds",
			Help:    "Duration of DHT put operations",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"network", "outcome"}), // outcome: "ok", "error"

		RejectedOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diddht_rejected_operations_total",
			Help: "Total number of identifier mutations rejected as unsupported",
		}, []string{"operation"}),

		KeysCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "diddht_kms_keys_created_total",
			Help: "Total number of identity keys created, by key management system",
		}, []string{"kms"}),
	}
}

// IncrementCreated records a published identifier.
func (m *Metrics) IncrementCreated(network string) {
	if m != nil {
		m.IdentifiersCreated.WithLabelValues(network).Inc()
	}
}

// ObservePublish records the duration and outcome of a DHT put.
func (m *Metrics) ObservePublish(network string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		m.PublishFailures.WithLabelValues(network).Inc()
	}
	m.PublishLatency.WithLabelValues(network, outcome).Observe(d.Seconds())
}

// IncrementRejected records a rejected mutation.
func (m *Metrics) IncrementRejected(op string) {
	if m != nil {
		m.RejectedOperations.WithLabelValues(op).Inc()
	}
}

// IncrementKeysCreated records an identity key created in kmsName.
func (m *Metrics) IncrementKeysCreated(kmsName string) {
	if m != nil {
		m.KeysCreated.WithLabelValues(kmsName).Inc()
	}
}
