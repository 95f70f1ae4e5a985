// Package metrics counts foreign-object lifecycle events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every collector of this package. Applications that want
// the counters on their own endpoint register it as a gatherer.
var Registry = prometheus.NewRegistry()

var (
	HandlesAcquired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blsct",
			Name:      "handles_acquired_total",
			Help:      "Foreign allocations taken into ownership, by kind.",
		},
		[]string{"kind"},
	)
	HandlesReleased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blsct",
			Name:      "handles_released_total",
			Help:      "Foreign allocations released, by kind.",
		},
		[]string{"kind"},
	)
	ForeignFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blsct",
			Name:      "foreign_failures_total",
			Help:      "Failed foreign calls, by error class.",
		},
		[]string{"class"},
	)
)

func init() {
	Registry.MustRegister(HandlesAcquired, HandlesReleased, ForeignFailures)
}

func Acquired(kind string) {
	HandlesAcquired.WithLabelValues(kind).Inc()
}

func Released(kind string) {
	HandlesReleased.WithLabelValues(kind).Inc()
}

func Failure(class string) {
	ForeignFailures.WithLabelValues(class).Inc()
}
