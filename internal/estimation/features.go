package estimation

// Feature column names, as the trained model expects them.
const (
	ColumnUnitsSold     = "units_sold"
	ColumnUnitMargin    = "unit_margin"
	ColumnDiscountRatio = "discount_ratio"
	ColumnMonth         = "month"
)

// FeatureColumns is the ordered schema of a FeatureVector.
var FeatureColumns = []string{ColumnUnitsSold, ColumnUnitMargin, ColumnDiscountRatio, ColumnMonth}

// DeriveFeatures builds the model feature row from raw simulator inputs.
//
// The unit margin is never clamped, so loss-making prices yield a negative margin. When gross revenue is not
// positive the discount ratio is undefined and reported as 0.
func DeriveFeatures(input SimulatorInput) FeatureVector {
	grossRevenue := input.SalePrice * float64(input.UnitsSold)

	discountRatio := 0.0
	if grossRevenue > 0 {
		discountRatio = input.Discount / grossRevenue
	}

	return FeatureVector{
		UnitsSold:     input.UnitsSold,
		UnitMargin:    input.SalePrice - input.ManufacturingPrice,
		DiscountRatio: discountRatio,
		Month:         input.Month,
	}
}

// Columns returns the column names of the row, in order.
func (f FeatureVector) Columns() []string {
	return append([]string(nil), FeatureColumns...)
}

// Values returns the row values in FeatureColumns order.
func (f FeatureVector) Values() []float64 {
	return []float64{float64(f.UnitsSold), f.UnitMargin, f.DiscountRatio, float64(f.Month)}
}

// Record returns the row keyed by column name.
func (f FeatureVector) Record() map[string]float64 {
	values := f.Values()
	record := make(map[string]float64, len(FeatureColumns))
	for i, column := range FeatureColumns {
		record[column] = values[i]
	}
	return record
}
