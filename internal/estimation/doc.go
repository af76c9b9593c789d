// Package estimation turns profit simulator inputs into a profit estimate.
//
// Two interchangeable strategies implement the Estimator contract: the ModelEstimator delegates to an injected
// Predictor over the derived FeatureVector, and the FormulaEstimator applies the closed-form business rule to the raw
// SimulatorInput. Select picks the authoritative result for a Mode, and ComputeProfit chains the whole request.
package estimation
