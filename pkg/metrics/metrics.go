package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsCreatedTotal   prometheus.Counter
	BookingsCancelledTotal prometheus.Counter
	BookingConflictsTotal  prometheus.Counter
	AuditWriteFailures     prometheus.Counter
	Subscribers            prometheus.Gauge
	EventsBroadcastTotal   prometheus.Counter
}

// New registers and returns the service metrics. serviceName becomes a
// constant label on every collector.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests processed.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings committed.",
			ConstLabels: constLabels,
		}),

		BookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled.",
			ConstLabels: constLabels,
		}),

		BookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking attempts that lost the race for an occupied slot.",
			ConstLabels: constLabels,
		}),

		AuditWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "audit_write_failures_total",
			Help:        "Audit log appends that failed after a committed mutation.",
			ConstLabels: constLabels,
		}),

		Subscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "slot_event_subscribers",
			Help:        "Currently connected slot-event subscribers.",
			ConstLabels: constLabels,
		}),

		EventsBroadcastTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_events_broadcast_total",
			Help:        "Slot change events fanned out to subscribers.",
			ConstLabels: constLabels,
		}),
	}
}
