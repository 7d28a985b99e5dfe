package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfit_analyses_total",
			Help: "Total number of resume analyses by outcome",
		},
		[]string{"format", "outcome"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobfit_analysis_duration_seconds",
			Help:    "Duration of resume analyses in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"format"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "jobfit_llm_request_duration_seconds",
			Help: "Duration of LLM generation calls in seconds",
		},
		[]string{"model"},
	)

	ResponsesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobfit_responses_parsed_total",
			Help: "Total number of raw responses parsed by mode",
		},
		[]string{"mode"},
	)
)

// Outcome labels for AnalysesTotal.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalidPDF  = "invalid_pdf"
	OutcomeLLMError    = "llm_error"
	OutcomeServerError = "server_error"
)
