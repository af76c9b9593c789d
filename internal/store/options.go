package store

import (
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type SaleQueryFilter BaseQuerier

func NewSaleQueryFilter() *SaleQueryFilter {
	return &SaleQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *SaleQueryFilter) ByCountry(country string) *SaleQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(country) = LOWER(?)", country)
	})
	return qf
}

func (qf *SaleQueryFilter) ByYear(year int) *SaleQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("year = ?", year)
	})
	return qf
}

func (qf *SaleQueryFilter) BySegment(segment string) *SaleQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(segment) = LOWER(?)", segment)
	})
	return qf
}

func (qf *SaleQueryFilter) apply(tx *gorm.DB) *gorm.DB {
	if qf == nil {
		return tx
	}
	for _, fn := range qf.QueryFn {
		tx = fn(tx)
	}
	return tx
}
