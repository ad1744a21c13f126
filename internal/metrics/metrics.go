// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package metrics provides Prometheus metrics for graphsemantics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "graphsemantics"

// Resolution outcomes.
const (
	OutcomeMovie    = "movie"
	OutcomePerson   = "person"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// ResolutionsTotal tracks entity resolutions by outcome
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of entity resolutions by outcome",
		},
		[]string{"outcome"},
	)

	// GatewayQueryDuration tracks lookup query duration in seconds
	GatewayQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "query_duration_seconds",
			Help:      "Duration of graph lookup queries in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"query"},
	)

	// GatewayQueryErrors tracks failed lookup queries
	GatewayQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "query_errors_total",
			Help:      "Total number of failed graph lookup queries",
		},
		[]string{"query"},
	)

	// ToolCallsTotal tracks tool invocations by tool and status
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tools",
			Name:      "calls_total",
			Help:      "Total number of tool invocations by tool and status",
		},
		[]string{"tool", "status"},
	)

	// AgentCompletionsTotal tracks LLM completion requests made by the agent
	AgentCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "completions_total",
			Help:      "Total number of chat completion requests by status",
		},
		[]string{"status"},
	)

	// ImportsTotal tracks dataset imports by status
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Total number of dataset imports by status",
		},
		[]string{"source", "status"},
	)
)

// Status returns the status label for an error.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
