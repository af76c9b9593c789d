package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	profitPlanner = "profit_planner"

	// Estimation metrics
	estimationsTotal           = "profit_estimations_total"
	estimationDurationSeconds  = "profit_estimation_duration_seconds"
	predictionCacheLookupTotal = "prediction_cache_lookups_total"

	// Dataset metrics
	datasetImportsTotal = "dataset_imports_total"

	// Labels
	modeLabel    = "mode"
	outcomeLabel = "outcome"
	resultLabel  = "result"
	stateLabel   = "state"
)

// Estimation outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeInferenceError = "inference_error"
	OutcomeError          = "error"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

/**
* Metrics definition
**/
var estimationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: profitPlanner,
		Name:      estimationsTotal,
		Help:      "number of profit estimations partitioned by mode and outcome",
	},
	[]string{modeLabel, outcomeLabel},
)

var estimationDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: profitPlanner,
		Name:      estimationDurationSeconds,
		Help:      "time spent computing a profit estimation, model inference included",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	},
	[]string{modeLabel},
)

var predictionCacheLookupsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: profitPlanner,
		Name:      predictionCacheLookupTotal,
		Help:      "number of prediction cache lookups partitioned by result",
	},
	[]string{resultLabel},
)

var datasetImportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: profitPlanner,
		Name:      datasetImportsTotal,
		Help:      "number of dataset imports",
	},
	[]string{stateLabel},
)

func IncreaseEstimationsTotalMetric(mode, outcome string) {
	labels := prometheus.Labels{
		modeLabel:    mode,
		outcomeLabel: outcome,
	}
	estimationsTotalMetric.With(labels).Inc()
}

func ObserveEstimationDuration(mode string, seconds float64) {
	estimationDurationMetric.With(prometheus.Labels{modeLabel: mode}).Observe(seconds)
}

func IncreasePredictionCacheLookupMetric(result string) {
	predictionCacheLookupsMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

func IncreaseDatasetImportsTotalMetric(state string) {
	labels := prometheus.Labels{
		stateLabel: state,
	}
	datasetImportsTotalMetric.With(labels).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimationsTotalMetric)
	prometheus.MustRegister(estimationDurationMetric)
	prometheus.MustRegister(predictionCacheLookupsMetric)
	prometheus.MustRegister(datasetImportsTotalMetric)
}
