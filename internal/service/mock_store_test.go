package service_test

import (
	"context"

	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/internal/store/model"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	sales       model.SaleList
	overview    model.Overview
	yearly      []model.YearlyTotal
	countries   []model.CountryTotal
	lastLimit   int
	lastFilter  *store.SaleQueryFilter
	getError    error
	createError error
	txStarted   int
}

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Sale() store.Sale {
	return &MockSaleStore{store: m}
}

func (m *MockStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	m.txStarted++
	return ctx, nil
}

func (m *MockStore) Statistics(ctx context.Context) (model.DatasetStats, error) {
	return model.NewDatasetStats(m.overview, m.countries), nil
}

func (m *MockStore) Close() error {
	return nil
}

type MockSaleStore struct {
	store *MockStore
}

func (m *MockSaleStore) CreateBatch(ctx context.Context, sales model.SaleList) (int64, error) {
	if m.store.createError != nil {
		return 0, m.store.createError
	}
	m.store.sales = append(m.store.sales, sales...)
	return int64(len(sales)), nil
}

func (m *MockSaleStore) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.store.sales))
	m.store.sales = nil
	return n, nil
}

func (m *MockSaleStore) Count(ctx context.Context, filter *store.SaleQueryFilter) (int64, error) {
	return int64(len(m.store.sales)), m.store.getError
}

func (m *MockSaleStore) Overview(ctx context.Context, filter *store.SaleQueryFilter) (model.Overview, error) {
	m.store.lastFilter = filter
	return m.store.overview, m.store.getError
}

func (m *MockSaleStore) YearlyTotals(ctx context.Context, filter *store.SaleQueryFilter) ([]model.YearlyTotal, error) {
	m.store.lastFilter = filter
	return m.store.yearly, m.store.getError
}

func (m *MockSaleStore) TopCountries(ctx context.Context, filter *store.SaleQueryFilter, limit int) ([]model.CountryTotal, error) {
	m.store.lastFilter = filter
	m.store.lastLimit = limit
	return m.store.countries, m.store.getError
}
