// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordersync"

// Remote call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport"
)

var (
	remoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Requests sent to the remote execution system by command and outcome",
		},
		[]string{"command", "outcome"},
	)

	remoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests to the remote execution system",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"command"},
	)

	syncIterations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "iterations_total",
			Help:      "Synchronizer iterations by result",
		},
		[]string{"result"},
	)

	syncOrders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "orders_total",
			Help:      "Orders pushed by the synchronizer by outcome",
		},
		[]string{"outcome"},
	)

	reelEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reels",
			Name:      "events_total",
			Help:      "Reel events by outcome",
		},
		[]string{"outcome"},
	)

	auditFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "write_failures_total",
			Help:      "Audit entries that could not be written",
		},
	)
)

func ObserveRemoteCall(command, outcome string, elapsed time.Duration) {
	remoteRequests.WithLabelValues(command, outcome).Inc()
	remoteDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func IncSyncIteration(result string) {
	syncIterations.WithLabelValues(result).Inc()
}

func IncSyncOrder(outcome string) {
	syncOrders.WithLabelValues(outcome).Inc()
}

func IncReelEvent(outcome string) {
	reelEvents.WithLabelValues(outcome).Inc()
}

func IncAuditFailure() {
	auditFailures.Inc()
}
