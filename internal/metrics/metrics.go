package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyses_total",
			Help: "Total number of resume analyses by outcome",
		},
		[]string{"outcome"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_analysis_duration_seconds",
			Help:    "Duration of a full resume analysis in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"outcome"},
	)

	ModelRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_request_duration_seconds",
			Help:    "Duration of generative model requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_extractions_total",
			Help: "Total number of resume text extractions by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	AnalysesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_analyses_in_flight",
			Help: "Number of analyses currently holding a session guard",
		},
	)
)

// Outcome labels shared by the counters above.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeExtraction = "extraction_error"
	OutcomeModel      = "model_error"
	OutcomeBusy       = "busy"
	OutcomeOther      = "error"
)
