package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/shops/:shopID/slots", "200", 0.05)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/shops/:shopID/slots", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/bookings", "201", 0.1)
	RecordHTTPRequest("POST", "/bookings", "201", 0.2)
	RecordHTTPRequest("POST", "/bookings", "409", 0.05)

	createdCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/bookings", "201"))
	conflictCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/bookings", "409"))

	assert.Equal(t, float64(2), createdCount)
	assert.Equal(t, float64(1), conflictCount)
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("created")
	RecordBooking("created")
	RecordBooking("conflict")
	RecordBooking("rejected")

	created := testutil.ToFloat64(BookingsTotal.WithLabelValues("created"))
	conflict := testutil.ToFloat64(BookingsTotal.WithLabelValues("conflict"))
	rejected := testutil.ToFloat64(BookingsTotal.WithLabelValues("rejected"))

	assert.Equal(t, float64(2), created)
	assert.Equal(t, float64(1), conflict)
	assert.Equal(t, float64(1), rejected)
}

func TestRecordBookingCancellation(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zenchair_booking_cancellations_total_test",
			Help: "Total number of booking cancellations",
		},
	)

	oldCounter := BookingCancellationsTotal
	BookingCancellationsTotal = testCounter
	defer func() { BookingCancellationsTotal = oldCounter }()

	RecordBookingCancellation()
	RecordBookingCancellation()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordSlotQuery(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "zenchair_slot_queries_total_test",
			Help: "Total number of availability queries",
		},
	)

	oldCounter := SlotQueriesTotal
	SlotQueriesTotal = testCounter
	defer func() { SlotQueriesTotal = oldCounter }()

	RecordSlotQuery(12)
	RecordSlotQuery(0)

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordBookingEvent(t *testing.T) {
	BookingEventsTotal.Reset()

	RecordBookingEvent("booking_created", "queued")
	RecordBookingEvent("booking_created", "queued")
	RecordBookingEvent("booking_cancelled", "error")

	queued := testutil.ToFloat64(BookingEventsTotal.WithLabelValues("booking_created", "queued"))
	failed := testutil.ToFloat64(BookingEventsTotal.WithLabelValues("booking_cancelled", "error"))

	assert.Equal(t, float64(2), queued)
	assert.Equal(t, float64(1), failed)
}
