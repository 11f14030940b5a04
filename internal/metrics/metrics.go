package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zenchair_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zenchair_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zenchair_bookings_total",
			Help: "Total number of booking attempts",
		},
		[]string{"result"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zenchair_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	SlotQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "zenchair_slot_queries_total",
			Help: "Total number of availability queries",
		},
	)

	SlotsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zenchair_slots_returned",
			Help:    "Number of free slots returned per availability query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	BookingEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zenchair_booking_events_total",
			Help: "Total number of booking state change events published",
		},
		[]string{"event_type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(result string) {
	BookingsTotal.WithLabelValues(result).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordSlotQuery(slotCount int) {
	SlotQueriesTotal.Inc()
	SlotsReturned.Observe(float64(slotCount))
}

func RecordBookingEvent(eventType, status string) {
	BookingEventsTotal.WithLabelValues(eventType, status).Inc()
}
