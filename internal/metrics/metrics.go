// Package metrics exposes prometheus collectors for the booking core.
// Handlers increment them; the /metrics endpoint serves them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// BookingRequests counts artist booking requests by outcome:
	// created, conflict, invalid_state, not_found or error.
	BookingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_requests_total",
			Help: "Stand booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	// BookingDecisions counts owner decisions on pending bookings by
	// decision: confirmed, rejected or cancelled.
	BookingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_decisions_total",
			Help: "Decisions taken on pending stand bookings.",
		},
		[]string{"decision"},
	)
)

func init() {
	prometheus.MustRegister(BookingRequests, BookingDecisions)
}
