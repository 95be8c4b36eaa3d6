package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts completed turns by terminal outcome
	// (inquiry, complete, error).
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lucid_turns_total",
			Help: "Total number of pipeline turns by terminal outcome",
		},
		[]string{"outcome"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lucid_llm_requests_total",
			Help: "Total completion requests by pipeline stage and status",
		},
		[]string{"stage", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lucid_llm_request_duration_seconds",
			Help: "Completion request latency by pipeline stage",
		},
		[]string{"stage"},
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lucid_search_requests_total",
			Help: "Total web search requests by status",
		},
		[]string{"status"},
	)

	ResearchAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lucid_research_attempts",
			Help:    "Number of research attempts used per proceed turn",
			Buckets: prometheus.LinearBuckets(1, 1, 5),
		},
	)

	ChunksEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lucid_chunks_emitted_total",
			Help: "Total answer chunks emitted to stream consumers",
		},
	)
)
