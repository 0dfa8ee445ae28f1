package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_pipeline_queries_total",
			Help: "Total number of questions answered, by intent",
		},
		[]string{"intent"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "query_pipeline_stage_duration_seconds",
			Help: "Duration of each pipeline stage in seconds",
		},
		[]string{"stage"},
	)

	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_pipeline_tool_calls_total",
			Help: "Total number of tool calls dispatched, by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ToolCallFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_pipeline_tool_call_failures_total",
			Help: "Tool call failures by operation and failure kind",
		},
		[]string{"operation", "kind"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_pipeline_cache_requests_total",
			Help: "Provider cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	PartialAnswers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_pipeline_partial_answers_total",
			Help: "Answers produced from partially failed plans",
		},
	)
)
