package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const collectTimeout = 5 * time.Second

type datasetStatsCollector struct {
	store          store.Store
	records        *prometheus.Desc
	totalSales     *prometheus.Desc
	totalProfit    *prometheus.Desc
	unitsSold      *prometheus.Desc
	avgMargin      *prometheus.Desc
	salesByCountry *prometheus.Desc
}

func newDatasetStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_dataset_%s", profitPlanner, name)
	}

	return &datasetStatsCollector{
		store: s,
		records: prometheus.NewDesc(
			fqName("records_total"),
			"Total number of sale records.",
			nil,
			prometheus.Labels{},
		),
		totalSales: prometheus.NewDesc(
			fqName("sales"),
			"Sum of sales over the dataset.",
			nil,
			prometheus.Labels{},
		),
		totalProfit: prometheus.NewDesc(
			fqName("profit"),
			"Sum of profit over the dataset.",
			nil,
			prometheus.Labels{},
		),
		unitsSold: prometheus.NewDesc(
			fqName("units_sold"),
			"Sum of units sold over the dataset.",
			nil,
			prometheus.Labels{},
		),
		avgMargin: prometheus.NewDesc(
			fqName("avg_margin_percent"),
			"Total profit over total sales, in percent.",
			nil,
			prometheus.Labels{},
		),
		salesByCountry: prometheus.NewDesc(
			fqName("sales_by_country"),
			"Sum of sales per country.",
			[]string{"country"},
			prometheus.Labels{},
		),
	}
}

// RegisterDatasetCollector exposes the dataset gauges computed from s on every scrape.
func RegisterDatasetCollector(s store.Store) error {
	return prometheus.Register(newDatasetStatsCollector(s))
}

func (c *datasetStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.totalSales
	ch <- c.totalProfit
	ch <- c.unitsSold
	ch <- c.avgMargin
	ch <- c.salesByCountry
}

// Collect implements Collector.
func (c *datasetStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats, err := c.store.Statistics(ctx)
	if err != nil {
		zap.S().Named("dataset_collector").Errorf("failed to collect dataset statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(stats.Records))
	ch <- prometheus.MustNewConstMetric(c.totalSales, prometheus.GaugeValue, stats.TotalSales)
	ch <- prometheus.MustNewConstMetric(c.totalProfit, prometheus.GaugeValue, stats.TotalProfit)
	ch <- prometheus.MustNewConstMetric(c.unitsSold, prometheus.GaugeValue, stats.UnitsSold)
	ch <- prometheus.MustNewConstMetric(c.avgMargin, prometheus.GaugeValue, stats.AvgMarginPct())

	for country, sales := range stats.SalesByCountry {
		ch <- prometheus.MustNewConstMetric(c.salesByCountry, prometheus.GaugeValue, sales, country)
	}
}
