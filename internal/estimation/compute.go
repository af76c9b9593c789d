package estimation

import "context"

// Evaluate runs one estimation request and keeps both strategy results.
//
// The input is validated first; a failing predictor stops the request before mode selection, whatever the mode,
// so a broken model is never hidden behind the formula.
func Evaluate(ctx context.Context, input SimulatorInput, mode Mode, predictor Predictor) (*Evaluation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, NewErrInvalidInputDomain("mode", "must be one of %s, got %q", modeList(), mode)
	}

	features := DeriveFeatures(input)

	mlProfit, err := NewModelEstimator(predictor).EstimateFeatures(ctx, features)
	if err != nil {
		return nil, err
	}
	ruleProfit := FormulaEstimator{}.Profit(input)

	return &Evaluation{
		Mode:       mode,
		Features:   features,
		MLProfit:   mlProfit,
		RuleProfit: ruleProfit,
		Profit:     Select(mode, mlProfit, ruleProfit),
	}, nil
}

// ComputeProfit returns the profit estimate for input under mode.
// Errors are *ErrInvalidInputDomain or *ErrModelInference.
func ComputeProfit(ctx context.Context, input SimulatorInput, mode Mode, predictor Predictor) (ProfitEstimate, error) {
	evaluation, err := Evaluate(ctx, input, mode, predictor)
	if err != nil {
		return 0, err
	}
	return evaluation.Profit, nil
}
