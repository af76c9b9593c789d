package estimation

import "context"

// SimulatorInput holds the raw what-if inputs of the profit simulator.
// Callers clamp values to their domains before building it; Validate reports anything out of range.
type SimulatorInput struct {
	UnitsSold          int     // non-negative
	SalePrice          float64 // per unit, positive
	ManufacturingPrice float64 // per unit, positive
	Discount           float64 // total discount amount, non-negative
	Month              int     // 1..12
}

// FeatureVector is the row handed to the trained predictor.
// Its columns, in order, are FeatureColumns.
type FeatureVector struct {
	UnitsSold     int     `json:"units_sold"`
	UnitMargin    float64 `json:"unit_margin"`
	DiscountRatio float64 `json:"discount_ratio"`
	Month         int     `json:"month"`
}

// ProfitEstimate is a profit amount in currency units.
type ProfitEstimate float64

// Predictor is the opaque trained model.
// It accepts a single feature row and returns a sequence whose first element is the predicted profit.
// Implementations must be safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, row FeatureVector) ([]float64, error)
}

// PredictorFunc adapts a plain function to the Predictor interface.
type PredictorFunc func(ctx context.Context, row FeatureVector) ([]float64, error)

func (f PredictorFunc) Predict(ctx context.Context, row FeatureVector) ([]float64, error) {
	return f(ctx, row)
}

// Evaluation is the outcome of one estimation request, with both strategy results kept for display.
type Evaluation struct {
	Mode       Mode
	Features   FeatureVector
	MLProfit   ProfitEstimate
	RuleProfit ProfitEstimate
	// Profit is the result selected for Mode.
	Profit ProfitEstimate
}
