package mappers

import (
	"github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/estimation"
)

// EstimateRequestToInput expects a validated request: required fields are set.
func EstimateRequestToInput(req v1alpha1.EstimateRequest) estimation.SimulatorInput {
	input := estimation.SimulatorInput{
		UnitsSold:          *req.UnitsSold,
		SalePrice:          *req.SalePrice,
		ManufacturingPrice: *req.ManufacturingPrice,
		Month:              *req.Month,
	}
	if req.Discount != nil {
		input.Discount = *req.Discount
	}
	return input
}

// ModeFromApi returns the requested mode, ModePureML when none is given.
func ModeFromApi(mode *string) (estimation.Mode, error) {
	if mode == nil || *mode == "" {
		return estimation.ModePureML, nil
	}
	return estimation.ParseMode(*mode)
}
