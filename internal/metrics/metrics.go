package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventhub_events_created_total",
		Help: "Total number of events created.",
	})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventhub_bookings_created_total",
		Help: "Total number of bookings accepted.",
	})

	BookingConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventhub_booking_conflicts_total",
		Help: "Total number of bookings rejected, labelled by conflict kind.",
	}, []string{"kind"})

	UploadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventhub_image_upload_failures_total",
		Help: "Total number of image upload failures, labelled by kind.",
	}, []string{"kind"})
)
