package events

import "encoding/json"

// EstimationEvent is published for every successful profit estimation.
type EstimationEvent struct {
	Mode          string  `json:"mode"`
	Profit        float64 `json:"profit"`
	MLProfit      float64 `json:"ml_profit"`
	RuleProfit    float64 `json:"rule_profit"`
	UnitsSold     int     `json:"units_sold"`
	UnitMargin    float64 `json:"unit_margin"`
	DiscountRatio float64 `json:"discount_ratio"`
	Month         int     `json:"month"`
}

// DatasetEvent is published when the sales dataset has been replaced.
type DatasetEvent struct {
	Source  string `json:"source"`
	Records int64  `json:"records"`
}

func (e EstimationEvent) Kind() string { return EstimationMessageKind }

func (e DatasetEvent) Kind() string { return DatasetMessageKind }

// Event is a payload that knows its message kind.
type Event interface {
	Kind() string
}

// Marshal returns the JSON body of e.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(e)
}
