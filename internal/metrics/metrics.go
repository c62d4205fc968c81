package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic_booking",
			Name:      "bookings_created_total",
			Help:      "Appointments booked, by flow.",
		},
		[]string{"flow"},
	)

	bookingConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clinic_booking",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected by the conflict rules, by flow and kind.",
		},
		[]string{"flow", "kind"},
	)

	staleBookingsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clinic_booking",
			Name:      "stale_bookings_purged_total",
			Help:      "Past consultation rows swept from the schedule.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingConflicts, staleBookingsPurged)
	})
}

// IncBookingCreated increments the created counter for a flow label.
func IncBookingCreated(flow string) {
	bookingsCreated.WithLabelValues(flow).Inc()
}

// IncBookingConflict increments the conflict counter for a flow and kind.
func IncBookingConflict(flow, kind string) {
	bookingConflicts.WithLabelValues(flow, kind).Inc()
}

// AddStalePurged records how many stale rows a sweep removed.
func AddStalePurged(n int64) {
	staleBookingsPurged.Add(float64(n))
}
