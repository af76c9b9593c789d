package store

import (
	"context"

	"github.com/kubev2v/profit-planner/internal/store/model"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type Sale interface {
	CreateBatch(ctx context.Context, sales model.SaleList) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, filter *SaleQueryFilter) (int64, error)
	Overview(ctx context.Context, filter *SaleQueryFilter) (model.Overview, error)
	YearlyTotals(ctx context.Context, filter *SaleQueryFilter) ([]model.YearlyTotal, error)
	// TopCountries returns countries by descending sales. A limit <= 0 returns every country.
	TopCountries(ctx context.Context, filter *SaleQueryFilter, limit int) ([]model.CountryTotal, error)
}

type SaleStore struct {
	db *gorm.DB
}

// Make sure we conform to Sale interface
var _ Sale = (*SaleStore)(nil)

func NewSaleStore(db *gorm.DB) Sale {
	return &SaleStore{db: db}
}

func (s *SaleStore) CreateBatch(ctx context.Context, sales model.SaleList) (int64, error) {
	if len(sales) == 0 {
		return 0, nil
	}
	result := s.getDB(ctx).WithContext(ctx).CreateInBatches(sales, insertBatchSize)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *SaleStore) DeleteAll(ctx context.Context) (int64, error) {
	result := s.getDB(ctx).WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Sale{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *SaleStore) Count(ctx context.Context, filter *SaleQueryFilter) (int64, error) {
	var count int64
	tx := filter.apply(s.getDB(ctx).WithContext(ctx).Model(&model.Sale{}))
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SaleStore) Overview(ctx context.Context, filter *SaleQueryFilter) (model.Overview, error) {
	var overview model.Overview
	tx := filter.apply(s.getDB(ctx).WithContext(ctx).Model(&model.Sale{})).
		Select("COUNT(*) AS records, " +
			"COALESCE(SUM(sales), 0) AS total_sales, " +
			"COALESCE(SUM(profit), 0) AS total_profit, " +
			"COALESCE(SUM(units_sold), 0) AS units_sold")
	if err := tx.Scan(&overview).Error; err != nil {
		return model.Overview{}, err
	}
	return overview, nil
}

func (s *SaleStore) YearlyTotals(ctx context.Context, filter *SaleQueryFilter) ([]model.YearlyTotal, error) {
	var totals []model.YearlyTotal
	tx := filter.apply(s.getDB(ctx).WithContext(ctx).Model(&model.Sale{})).
		Select("year, COALESCE(SUM(sales), 0) AS sales, COALESCE(SUM(profit), 0) AS profit").
		Group("year").
		Order("year ASC")
	if err := tx.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (s *SaleStore) TopCountries(ctx context.Context, filter *SaleQueryFilter, limit int) ([]model.CountryTotal, error) {
	var totals []model.CountryTotal
	tx := filter.apply(s.getDB(ctx).WithContext(ctx).Model(&model.Sale{})).
		Select("country, COALESCE(SUM(sales), 0) AS sales").
		Group("country").
		Order("sales DESC, country ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (s *SaleStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
