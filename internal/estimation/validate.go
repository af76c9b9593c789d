package estimation

import "math"

// Validate checks every field against its domain. Values are reported, never clamped.
func (in SimulatorInput) Validate() error {
	if in.UnitsSold < 0 {
		return NewErrInvalidInputDomain(ColumnUnitsSold, "must be non-negative, got %d", in.UnitsSold)
	}
	if err := positive("sale_price", in.SalePrice); err != nil {
		return err
	}
	if err := positive("manufacturing_price", in.ManufacturingPrice); err != nil {
		return err
	}
	if !isFinite(in.Discount) {
		return NewErrInvalidInputDomain("discount", "must be finite, got %v", in.Discount)
	}
	if in.Discount < 0 {
		return NewErrInvalidInputDomain("discount", "must be non-negative, got %v", in.Discount)
	}
	if in.Month < 1 || in.Month > 12 {
		return NewErrInvalidInputDomain(ColumnMonth, "must be in [1,12], got %d", in.Month)
	}
	return nil
}

func positive(field string, v float64) error {
	if !isFinite(v) {
		return NewErrInvalidInputDomain(field, "must be finite, got %v", v)
	}
	if v <= 0 {
		return NewErrInvalidInputDomain(field, "must be positive, got %v", v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
