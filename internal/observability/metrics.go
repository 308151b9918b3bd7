package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_requests_total",
			Help: "Total number of requests",
		},
		[]string{"route", "code", "method"},
	)

	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_wizard_transitions_total",
			Help: "Wizard navigation attempts by direction and result",
		},
		[]string{"direction", "result"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "visa_wizard_sessions",
			Help: "Wizard sessions currently held in memory",
		},
	)

	BookingsFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visa_bookings_finalized_total",
			Help: "Total booking records created",
		},
	)

	DispatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_confirmation_dispatch_total",
			Help: "Confirmation dispatch attempts by outcome",
		},
		[]string{"outcome"},
	)

	HandoffOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_handoff_ops_total",
			Help: "Hand-off store operations",
		},
		[]string{"op"},
	)

	RelayDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_relay_deliveries_total",
			Help: "Confirmation relay deliveries by result",
		},
		[]string{"result"},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visa_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)
