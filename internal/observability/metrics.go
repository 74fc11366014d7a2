package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Number of successful signups, labeled by activity.",
	}, []string{"activity"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "unregisters_total",
		Help:      "Number of successful unregisters, labeled by activity.",
	}, []string{"activity"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "rejected_total",
		Help:      "Number of roster mutations rejected, labeled by reason.",
	}, []string{"reason"})

	rosterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current roster size per activity.",
	}, []string{"activity"})

	eventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Number of roster events successfully published to Kafka.",
	}, []string{"event_type"})

	eventsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "events",
		Name:      "failed_total",
		Help:      "Number of roster events that failed to publish.",
	}, []string{"event_type"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, rejectedCounter, rosterGauge, eventsPublished, eventsFailed)
}

// RecordSignup counts a successful signup and updates the roster gauge.
func RecordSignup(activity string, rosterSize int) {
	signupCounter.WithLabelValues(activity).Inc()
	rosterGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordUnregister counts a successful unregister and updates the roster gauge.
func RecordUnregister(activity string, rosterSize int) {
	unregisterCounter.WithLabelValues(activity).Inc()
	rosterGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordRejected counts a rejected mutation by reason.
func RecordRejected(reason string) {
	rejectedCounter.WithLabelValues(reason).Inc()
}

// RecordEventPublished counts a delivered roster event.
func RecordEventPublished(eventType string) {
	eventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventFailed counts a dropped roster event.
func RecordEventFailed(eventType string) {
	eventsFailed.WithLabelValues(eventType).Inc()
}
