package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the authorization registry.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Deregistrations *prometheus.CounterVec
	OwnerTransfers  prometheus.Counter
}

// New creates a Metrics instance with all authz metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "penledger_role_registrations_total",
			Help: "Total role registrations by role",
		}, []string{"role"}),
		Deregistrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "penledger_role_deregistrations_total",
			Help: "Total role deregistrations by role",
		}, []string{"role"}),
		OwnerTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "penledger_owner_transfers_total",
			Help: "Total ownership transfers",
		}),
	}
}

// IncRegistered records a successful role registration.
func (m *Metrics) IncRegistered(role string) {
	m.Registrations.WithLabelValues(role).Inc()
}

// IncDeregistered records a successful role removal.
func (m *Metrics) IncDeregistered(role string) {
	m.Deregistrations.WithLabelValues(role).Inc()
}

// IncOwnerTransferred records an ownership transfer.
func (m *Metrics) IncOwnerTransferred() {
	m.OwnerTransfers.Inc()
}
