// Copyright 2025 James Ross
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StageInvocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wfo_stage_invocations_total",
		Help: "Total number of pipeline stage invocations",
	}, []string{"stage"})
	StageDegradations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wfo_stage_degradations_total",
		Help: "Total number of stage invocations that returned degraded results",
	}, []string{"stage"})
	StageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wfo_stage_duration_seconds",
		Help:    "Histogram of pipeline stage durations",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	OrchestratorRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wfo_orchestrator_runs_total",
		Help: "Total orchestrator runs by terminal status",
	}, []string{"status"})
	StoreCircuitBreakerState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wfo_store_circuit_breaker_state",
		Help: "0 Closed, 1 HalfOpen, 2 Open",
	})
	StoreCircuitBreakerTrips = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wfo_store_circuit_breaker_trips_total",
		Help: "Count of times the MetricsStore circuit breaker transitioned to Open",
	})
)

func init() {
	prometheus.MustRegister(StageInvocations, StageDegradations, StageDuration, OrchestratorRuns, StoreCircuitBreakerState, StoreCircuitBreakerTrips)
}

// Handler exposes the Prometheus registry for an embedding service to mount;
// this core defines no HTTP surface of its own (spec.md §1 Non-goals).
func Handler() http.Handler {
	return promhttp.Handler()
}
