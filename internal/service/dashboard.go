package service

import (
	"context"
	"fmt"
	"io"

	"github.com/kubev2v/profit-planner/internal/dataset"
	"github.com/kubev2v/profit-planner/internal/events"
	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/internal/store/model"
	"github.com/kubev2v/profit-planner/pkg/log"
	"github.com/kubev2v/profit-planner/pkg/metrics"
)

const DefaultCountriesLimit = 10

// DashboardFilter narrows the dashboard aggregates. Zero values do not filter.
type DashboardFilter struct {
	Country string
	Segment string
	Year    int
}

func (f DashboardFilter) query() *store.SaleQueryFilter {
	q := store.NewSaleQueryFilter()
	if f.Country != "" {
		q = q.ByCountry(f.Country)
	}
	if f.Segment != "" {
		q = q.BySegment(f.Segment)
	}
	if f.Year != 0 {
		q = q.ByYear(f.Year)
	}
	return q
}

// DashboardService serves the historical KPIs and keeps the sales dataset loaded.
type DashboardService struct {
	store       store.Store
	eventWriter EventWriter
	logger      *log.StructuredLogger
}

func NewDashboardService(store store.Store) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: log.NewDebugLogger("dashboard_service"),
	}
}

// WithEventWriter publishes a dataset event after every successful import.
func (ds *DashboardService) WithEventWriter(w EventWriter) *DashboardService {
	ds.eventWriter = w
	return ds
}

func (ds *DashboardService) Overview(ctx context.Context, filter DashboardFilter) (model.Overview, error) {
	overview, err := ds.store.Sale().Overview(ctx, filter.query())
	if err != nil {
		return model.Overview{}, fmt.Errorf("failed to compute overview: %w", err)
	}
	return overview, nil
}

// YearlyTrend returns sales and profit per year, oldest first.
func (ds *DashboardService) YearlyTrend(ctx context.Context, filter DashboardFilter) ([]model.YearlyTotal, error) {
	totals, err := ds.store.Sale().YearlyTotals(ctx, filter.query())
	if err != nil {
		return nil, fmt.Errorf("failed to compute yearly totals: %w", err)
	}
	return totals, nil
}

// TopCountries returns the countries with the most sales. A limit <= 0 means DefaultCountriesLimit.
func (ds *DashboardService) TopCountries(ctx context.Context, filter DashboardFilter, limit int) ([]model.CountryTotal, error) {
	if limit > MaxCountriesLimit {
		return nil, NewErrInvalidLimit(limit)
	}
	if limit <= 0 {
		limit = DefaultCountriesLimit
	}

	totals, err := ds.store.Sale().TopCountries(ctx, filter.query(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top countries: %w", err)
	}
	return totals, nil
}

// ImportDataset replaces the stored sales with the dataset file at path.
func (ds *DashboardService) ImportDataset(ctx context.Context, path string) (int64, error) {
	sales, err := dataset.Read(path)
	if err != nil {
		metrics.IncreaseDatasetImportsTotalMetric("failed")
		return 0, err
	}
	return ds.importSales(ctx, path, sales)
}

// UploadDataset replaces the stored sales with an uploaded dataset file.
// Unreadable content is reported as *ErrFileCorrupted.
func (ds *DashboardService) UploadDataset(ctx context.Context, filename string, content io.Reader) (int64, error) {
	sales, err := dataset.ReadFrom(filename, content)
	if err != nil {
		metrics.IncreaseDatasetImportsTotalMetric("failed")
		return 0, NewErrDatasetFileCorrupted(err.Error())
	}
	return ds.importSales(ctx, filename, sales)
}

func (ds *DashboardService) importSales(ctx context.Context, source string, sales model.SaleList) (int64, error) {
	logger := ds.logger.WithContext(ctx)
	tracer := logger.Operation("import_dataset").
		WithString("source", source).
		WithInt("records", len(sales)).
		Build()

	if len(sales) == 0 {
		err := NewErrDatasetEmpty(source)
		tracer.Error(err).Log()
		metrics.IncreaseDatasetImportsTotalMetric("failed")
		return 0, err
	}

	var created int64
	err := store.InTransaction(ctx, ds.store, func(ctx context.Context) error {
		deleted, err := ds.store.Sale().DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear sales: %w", err)
		}
		tracer.Step("previous_sales_deleted").WithInt("deleted", int(deleted)).Log()

		created, err = ds.store.Sale().CreateBatch(ctx, sales)
		if err != nil {
			return fmt.Errorf("failed to insert sales: %w", err)
		}
		return nil
	})
	if err != nil {
		tracer.Error(err).Log()
		metrics.IncreaseDatasetImportsTotalMetric("failed")
		return 0, err
	}

	metrics.IncreaseDatasetImportsTotalMetric("success")
	pushEvent(ctx, ds.eventWriter, events.DatasetEvent{Source: source, Records: created})
	tracer.Success().WithInt("created", int(created)).Log()
	return created, nil
}
