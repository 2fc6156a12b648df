package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	MovementsPosted      *prometheus.CounterVec
	MovementsReversed    prometheus.Counter
	SessionsOpened       prometheus.Counter
	SessionsClosed       prometheus.Counter
	SessionDiscrepancies prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		MovementsPosted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cashdesk_movements_posted_total",
			Help: "Total number of ledger movements posted, by movement type",
		}, []string{"movement_type"}),
		MovementsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashdesk_movements_reversed_total",
			Help: "Total number of movements reversed",
		}),
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashdesk_sessions_opened_total",
			Help: "Total number of cashier sessions opened",
		}),
		SessionsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashdesk_sessions_closed_total",
			Help: "Total number of cashier sessions closed",
		}),
		SessionDiscrepancies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashdesk_session_discrepancies_total",
			Help: "Total number of sessions closed with a non-zero cash difference",
		}),
	}
}

// IncrementMovementsPosted increments the posted counter for a movement type
func (m *Metrics) IncrementMovementsPosted(movementType string) {
	m.MovementsPosted.WithLabelValues(movementType).Inc()
}

// IncrementMovementsReversed increments the reversed movements counter by 1
func (m *Metrics) IncrementMovementsReversed() {
	m.MovementsReversed.Inc()
}

// IncrementSessionsOpened increments the opened sessions counter by 1
func (m *Metrics) IncrementSessionsOpened() {
	m.SessionsOpened.Inc()
}

// IncrementSessionsClosed increments the closed sessions counter by 1
func (m *Metrics) IncrementSessionsClosed() {
	m.SessionsClosed.Inc()
}

// IncrementSessionDiscrepancies increments the discrepancy counter by 1
func (m *Metrics) IncrementSessionDiscrepancies() {
	m.SessionDiscrepancies.Inc()
}
