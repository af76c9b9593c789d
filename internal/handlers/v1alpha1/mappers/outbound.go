package mappers

import (
	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/internal/store/model"
	"github.com/kubev2v/profit-planner/internal/util"
)

func EvaluationToApi(e estimation.Evaluation) api.EstimateResponse {
	return api.EstimateResponse{
		Mode:          string(e.Mode),
		ModeLabel:     e.Mode.Label(),
		Profit:        util.RoundCurrency(float64(e.Profit)),
		ProfitDisplay: util.FormatCurrency(float64(e.Profit)),
		MlProfit:      util.RoundCurrency(float64(e.MLProfit)),
		RuleProfit:    util.RoundCurrency(float64(e.RuleProfit)),
		Features: api.Features{
			UnitsSold:     e.Features.UnitsSold,
			UnitMargin:    e.Features.UnitMargin,
			DiscountRatio: e.Features.DiscountRatio,
			Month:         e.Features.Month,
		},
	}
}

func OverviewToApi(o model.Overview) api.Overview {
	return api.Overview{
		Records:      o.Records,
		TotalSales:   util.RoundCurrency(o.TotalSales),
		TotalProfit:  util.RoundCurrency(o.TotalProfit),
		UnitsSold:    o.UnitsSold,
		AvgMarginPct: util.RoundCurrency(o.AvgMarginPct()),
	}
}

// YearlyTotalsToApi never returns a nil slice so an empty dataset renders as [].
func YearlyTotalsToApi(totals []model.YearlyTotal) api.YearlyTrend {
	years := make([]api.YearlyTotal, 0, len(totals))
	for _, t := range totals {
		years = append(years, api.YearlyTotal{
			Year:   t.Year,
			Sales:  util.RoundCurrency(t.Sales),
			Profit: util.RoundCurrency(t.Profit),
		})
	}
	return api.YearlyTrend{Years: years}
}

func CountryTotalsToApi(totals []model.CountryTotal) api.TopCountries {
	countries := make([]api.CountryTotal, 0, len(totals))
	for _, t := range totals {
		countries = append(countries, api.CountryTotal{
			Country: t.Country,
			Sales:   util.RoundCurrency(t.Sales),
		})
	}
	return api.TopCountries{Countries: countries}
}
