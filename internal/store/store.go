package store

import (
	"context"

	"github.com/kubev2v/profit-planner/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Sale() Sale
	Statistics(ctx context.Context) (model.DatasetStats, error)
	Close() error
}

type DataStore struct {
	db   *gorm.DB
	sale Sale
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		sale: NewSaleStore(db),
		db:   db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Sale() Sale {
	return s.sale
}

// Statistics gathers the dataset figures exported as gauges.
func (s *DataStore) Statistics(ctx context.Context) (model.DatasetStats, error) {
	overview, err := s.Sale().Overview(ctx, nil)
	if err != nil {
		return model.DatasetStats{}, err
	}
	countries, err := s.Sale().TopCountries(ctx, nil, 0)
	if err != nil {
		return model.DatasetStats{}, err
	}
	return model.NewDatasetStats(overview, countries), nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
