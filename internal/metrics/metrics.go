// Package metrics declares the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquaflow_rpc_requests_total",
			Help: "Total number of RPCs served, by procedure and Connect code.",
		},
		[]string{"procedure", "code"},
	)
	rpcDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aquaflow_rpc_duration_seconds",
			Help:    "RPC latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)

	ReadingsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaflow_readings_recorded_total",
		Help: "Meter readings recorded and billed.",
	})
	BilledAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaflow_billed_amount_total",
		Help: "Sum of bill amounts issued, in currency units.",
	})
	BillsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaflow_bills_paid_total",
		Help: "Bills marked as paid.",
	})
	AlertsDismissed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aquaflow_alerts_dismissed_total",
		Help: "Alert dismissals that changed an operator's dismissed set.",
	})

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquaflow_upstream_requests_total",
			Help: "Calls to the generative AI provider, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	upstreamDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aquaflow_upstream_duration_seconds",
			Help:    "Generative AI provider latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Upstream outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
	OutcomeNotFound = "not_found"
)

// ObserveRPC records one served RPC.
func ObserveRPC(procedure, code string, dur time.Duration) {
	rpcRequestsTotal.WithLabelValues(procedure, code).Inc()
	rpcDurationSeconds.WithLabelValues(procedure).Observe(dur.Seconds())
}

// ObserveUpstream records one call to the AI provider.
func ObserveUpstream(operation, outcome string, dur time.Duration) {
	upstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	upstreamDurationSeconds.WithLabelValues(operation).Observe(dur.Seconds())
}

// RPCCount returns the counter for a procedure and code. Used by tests.
func RPCCount(procedure, code string) prometheus.Counter {
	return rpcRequestsTotal.WithLabelValues(procedure, code)
}

// UpstreamCount returns the counter for an operation and outcome. Used by tests.
func UpstreamCount(operation, outcome string) prometheus.Counter {
	return upstreamRequestsTotal.WithLabelValues(operation, outcome)
}
