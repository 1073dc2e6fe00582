package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"swiftAid/pkg/e"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiftaid_transitions_total",
			Help: "Lifecycle events by outcome",
		},
		[]string{"event", "outcome"},
	)

	assignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swiftaid_assignments_total",
			Help: "Ambulance assignment attempts by outcome",
		},
		[]string{"outcome"},
	)

	fanoutDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftaid_fanout_delivered_total",
		Help: "Change events handed to subscribers",
	})

	fanoutCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swiftaid_fanout_coalesced_total",
		Help: "Change events replaced by a newer one before delivery",
	})

	subscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swiftaid_subscribers",
		Help: "Open subscriptions on this instance",
	})

	staleIncidents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swiftaid_stale_incidents",
			Help: "Incidents waiting longer than the stale threshold",
		},
		[]string{"status"},
	)
)

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return e.Code(err)
}

func ObserveTransition(event string, err error) {
	transitionsTotal.WithLabelValues(event, outcome(err)).Inc()
}

func ObserveAssignment(err error) {
	assignmentsTotal.WithLabelValues(outcome(err)).Inc()
}

func FanoutDelivered() { fanoutDelivered.Inc() }

func FanoutCoalesced() { fanoutCoalesced.Inc() }

func SubscriberOpened() { subscribers.Inc() }

func SubscriberClosed() { subscribers.Dec() }

func SetStale(status string, n int) {
	staleIncidents.WithLabelValues(status).Set(float64(n))
}
