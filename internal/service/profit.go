package service

import (
	"context"
	"errors"
	"time"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/internal/events"
	"github.com/kubev2v/profit-planner/pkg/log"
	"github.com/kubev2v/profit-planner/pkg/metrics"
)

// ProfitService runs the profit simulator against the configured predictor.
type ProfitService struct {
	predictor   estimation.Predictor
	eventWriter EventWriter
	logger      *log.StructuredLogger
}

func NewProfitService(predictor estimation.Predictor) *ProfitService {
	return &ProfitService{
		predictor: predictor,
		logger:    log.NewDebugLogger("profit_service"),
	}
}

// WithEventWriter publishes an estimation event for every successful estimate.
func (ps *ProfitService) WithEventWriter(w EventWriter) *ProfitService {
	ps.eventWriter = w
	return ps
}

// Estimate evaluates both strategies for input and returns the one selected by mode.
// Errors are the typed estimation errors, returned unchanged.
func (ps *ProfitService) Estimate(ctx context.Context, input estimation.SimulatorInput, mode estimation.Mode) (*estimation.Evaluation, error) {
	logger := ps.logger.WithContext(ctx)
	tracer := logger.Operation("estimate_profit").
		WithString("mode", string(mode)).
		WithInt("units_sold", input.UnitsSold).
		WithInt("month", input.Month).
		Build()

	start := time.Now()
	evaluation, err := estimation.Evaluate(ctx, input, mode, ps.predictor)
	elapsed := time.Since(start)

	modeLabel := string(mode)
	if !mode.Valid() {
		modeLabel = "unknown"
	}
	metrics.ObserveEstimationDuration(modeLabel, elapsed.Seconds())
	metrics.IncreaseEstimationsTotalMetric(modeLabel, outcome(err))

	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Step("strategies_evaluated").
		WithFloat("ml_profit", float64(evaluation.MLProfit)).
		WithFloat("rule_profit", float64(evaluation.RuleProfit)).
		Log()

	pushEvent(ctx, ps.eventWriter, events.EstimationEvent{
		Mode:          string(evaluation.Mode),
		Profit:        float64(evaluation.Profit),
		MLProfit:      float64(evaluation.MLProfit),
		RuleProfit:    float64(evaluation.RuleProfit),
		UnitsSold:     evaluation.Features.UnitsSold,
		UnitMargin:    evaluation.Features.UnitMargin,
		DiscountRatio: evaluation.Features.DiscountRatio,
		Month:         evaluation.Features.Month,
	})

	tracer.Success().
		WithFloat("profit", float64(evaluation.Profit)).
		Log()

	return evaluation, nil
}

func outcome(err error) string {
	var invalid *estimation.ErrInvalidInputDomain
	var inference *estimation.ErrModelInference
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &invalid):
		return metrics.OutcomeInvalidInput
	case errors.As(err, &inference):
		return metrics.OutcomeInferenceError
	default:
		return metrics.OutcomeError
	}
}
