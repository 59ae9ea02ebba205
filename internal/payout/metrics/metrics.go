package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the payout lifecycle and death benefit
// processing.
type Metrics struct {
	PayoutsInitiated     prometheus.Counter
	PayoutsCompleted     prometheus.Counter
	DeathsReported       prometheus.Counter
	DeathBenefitsPaid    prometheus.Counter
	EstimateDuration     prometheus.Histogram
	DeathBenefitAssigned prometheus.Counter
}

// New creates a Metrics instance with all payout metrics registered.
func New() *Metrics {
	return &Metrics{
		PayoutsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "penledger_payouts_initiated_total",
			Help: "Total payouts initiated",
		}),
		PayoutsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "penledger_payouts_completed_total",
			Help: "Total payouts completed",
		}),
		DeathsReported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "penledger_deaths_reported_total",
			Help: "Total death reports accepted",
		}),
		DeathBenefitAssigned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "penledger_death_benefits_assigned_total",
			Help: "Total death benefits assigned to beneficiaries",
		}),
		DeathBenefitsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "penledger_death_benefits_paid_total",
			Help: "Total death benefits marked paid",
		}),
		EstimateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "penledger_estimate_duration_seconds",
			Help:    "Duration of payout estimate queries",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}
}

// ObserveEstimate records the duration of an estimate query.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveEstimate(start time.Time) {
	m.EstimateDuration.Observe(time.Since(start).Seconds())
}
