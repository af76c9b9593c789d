package model

// Overview holds the dataset KPIs.
type Overview struct {
	Records     int64
	TotalSales  float64
	TotalProfit float64
	UnitsSold   float64
}

// AvgMarginPct is total profit over total sales, in percent. It is 0 for an empty dataset.
func (o Overview) AvgMarginPct() float64 {
	if o.TotalSales == 0 {
		return 0
	}
	return o.TotalProfit / o.TotalSales * 100
}

type YearlyTotal struct {
	Year   int
	Sales  float64
	Profit float64
}

type CountryTotal struct {
	Country string
	Sales   float64
}

// DatasetStats is the snapshot exported by the dataset collector.
type DatasetStats struct {
	Overview
	SalesByCountry map[string]float64
}

func NewDatasetStats(overview Overview, countries []CountryTotal) DatasetStats {
	stats := DatasetStats{
		Overview:       overview,
		SalesByCountry: make(map[string]float64, len(countries)),
	}
	for _, c := range countries {
		stats.SalesByCountry[c.Country] += c.Sales
	}
	return stats
}
