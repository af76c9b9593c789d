package v1alpha1

// EstimateRequest is the body of POST /api/v1/profit/estimate.
type EstimateRequest struct {
	UnitsSold          *int     `json:"units_sold" validate:"required,gte=0"`
	SalePrice          *float64 `json:"sale_price" validate:"required,gt=0"`
	ManufacturingPrice *float64 `json:"manufacturing_price" validate:"required,gt=0"`
	// Discount is the total discount amount. Defaults to 0.
	Discount *float64 `json:"discount,omitempty" validate:"omitempty,gte=0"`
	Month    *int     `json:"month" validate:"required,gte=1,lte=12"`
	// Mode is pure_ml or business_adjusted. Defaults to pure_ml.
	Mode *string `json:"mode,omitempty" validate:"omitempty,estimation_mode"`
}

type Features struct {
	UnitsSold     int     `json:"units_sold"`
	UnitMargin    float64 `json:"unit_margin"`
	DiscountRatio float64 `json:"discount_ratio"`
	Month         int     `json:"month"`
}

type EstimateResponse struct {
	Mode          string   `json:"mode"`
	ModeLabel     string   `json:"mode_label"`
	Profit        float64  `json:"profit"`
	ProfitDisplay string   `json:"profit_display"`
	MlProfit      float64  `json:"ml_profit"`
	RuleProfit    float64  `json:"rule_profit"`
	Features      Features `json:"features"`
}

type Overview struct {
	Records      int64   `json:"records"`
	TotalSales   float64 `json:"total_sales"`
	TotalProfit  float64 `json:"total_profit"`
	UnitsSold    float64 `json:"units_sold"`
	AvgMarginPct float64 `json:"avg_margin_pct"`
}

type YearlyTotal struct {
	Year   int     `json:"year"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

type YearlyTrend struct {
	Years []YearlyTotal `json:"years"`
}

type CountryTotal struct {
	Country string  `json:"country"`
	Sales   float64 `json:"sales"`
}

type TopCountries struct {
	Countries []CountryTotal `json:"countries"`
}

type DatasetImport struct {
	Records int64 `json:"records"`
}

type Info struct {
	GitCommit   string   `json:"gitCommit"`
	VersionName string   `json:"versionName"`
	Modes       []string `json:"modes"`
}

type Status struct {
	Status string `json:"status"`
}

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}
