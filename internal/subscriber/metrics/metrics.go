// Package metrics exposes the provisioning gateway's Prometheus
// instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts provisioning outcomes and times registry exchanges.
type Metrics struct {
	subscribersCreated prometheus.Counter
	subscribersDeleted prometheus.Counter
	provisionFailures  *prometheus.CounterVec
	exchangeDuration   prometheus.Histogram
}

// New registers the gateway metrics with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		subscribersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hss_gateway_subscribers_created_total",
			Help: "Subscribers successfully created in the registry.",
		}),
		subscribersDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "hss_gateway_subscribers_deleted_total",
			Help: "Subscribers successfully deleted from the registry.",
		}),
		provisionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hss_gateway_provision_failures_total",
			Help: "Provisioning operations rejected or failed, by operation.",
		}, []string{"operation"}),
		exchangeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hss_gateway_registry_exchange_duration_seconds",
			Help:    "Round-trip time of SOAP exchanges with the registry.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementCreated counts one successful subscriber creation.
func (m *Metrics) IncrementCreated() {
	m.subscribersCreated.Inc()
}

// IncrementDeleted counts one successful subscriber deletion.
func (m *Metrics) IncrementDeleted() {
	m.subscribersDeleted.Inc()
}

// IncrementFailure counts one failed provisioning operation.
func (m *Metrics) IncrementFailure(operation string) {
	m.provisionFailures.WithLabelValues(operation).Inc()
}

// ObserveExchange records the elapsed time of one registry exchange.
func (m *Metrics) ObserveExchange(start time.Time) {
	m.exchangeDuration.Observe(time.Since(start).Seconds())
}
