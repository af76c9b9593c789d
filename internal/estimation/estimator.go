package estimation

import (
	"context"
	"errors"
	"fmt"
)

// Estimator is the shared contract of the two profit strategies.
// The set is closed: only ModelEstimator and FormulaEstimator implement it.
type Estimator interface {
	// Name returns the human-readable name of the strategy.
	Name() string
	// Estimate computes the profit for the given simulator input.
	Estimate(ctx context.Context, input SimulatorInput) (ProfitEstimate, error)

	sealed()
}

// Compile-time assertions that both strategies implement the Estimator interface.
var (
	_ Estimator = (*ModelEstimator)(nil)
	_ Estimator = FormulaEstimator{}
)

// ModelEstimator delegates to the trained predictor. It owns no state besides the predictor handle.
type ModelEstimator struct {
	predictor Predictor
}

// NewModelEstimator creates a ModelEstimator backed by the given predictor.
func NewModelEstimator(predictor Predictor) *ModelEstimator {
	return &ModelEstimator{predictor: predictor}
}

func (e *ModelEstimator) Name() string { return "Pure ML" }

func (e *ModelEstimator) sealed() {}

// Estimate derives the feature row from input and runs the predictor on it.
func (e *ModelEstimator) Estimate(ctx context.Context, input SimulatorInput) (ProfitEstimate, error) {
	return e.EstimateFeatures(ctx, DeriveFeatures(input))
}

// EstimateFeatures runs the predictor on an already derived feature row.
// Any predictor failure or malformed prediction is returned as *ErrModelInference; no default is substituted.
func (e *ModelEstimator) EstimateFeatures(ctx context.Context, features FeatureVector) (ProfitEstimate, error) {
	if e.predictor == nil {
		return 0, NewErrModelInference(errors.New("no predictor configured"))
	}

	prediction, err := e.predictor.Predict(ctx, features)
	if err != nil {
		var inferenceErr *ErrModelInference
		if errors.As(err, &inferenceErr) {
			return 0, err
		}
		return 0, NewErrModelInference(err)
	}

	if len(prediction) == 0 {
		return 0, NewErrModelInference(errors.New("predictor returned no values"))
	}
	if !isFinite(prediction[0]) {
		return 0, NewErrModelInference(fmt.Errorf("predictor returned a non-finite value: %v", prediction[0]))
	}

	return ProfitEstimate(prediction[0]), nil
}

// FormulaEstimator applies the closed-form business rule
//
//	profit = (sale_price - manufacturing_price) * units_sold - discount
//
// to the raw input. It bypasses feature engineering and never fails.
type FormulaEstimator struct{}

func (FormulaEstimator) Name() string { return "Business-Adjusted" }

func (FormulaEstimator) sealed() {}

// Profit computes the rule-based profit.
func (FormulaEstimator) Profit(input SimulatorInput) ProfitEstimate {
	return ProfitEstimate((input.SalePrice-input.ManufacturingPrice)*float64(input.UnitsSold) - input.Discount)
}

// Estimate implements Estimator. The error is always nil.
func (f FormulaEstimator) Estimate(_ context.Context, input SimulatorInput) (ProfitEstimate, error) {
	return f.Profit(input), nil
}
