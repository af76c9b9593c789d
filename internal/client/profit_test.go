package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitClient_Estimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/profit/estimate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var req api.EstimateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.UnitsSold)
		assert.Equal(t, 1000, *req.UnitsSold)

		_ = json.NewEncoder(w).Encode(api.EstimateResponse{Mode: "business_adjusted", Profit: 7500, ProfitDisplay: "₹7,500.00"})
	}))
	defer server.Close()

	units, price, cost, month := 1000, 20.0, 12.0, 6
	mode := "business_adjusted"
	c := NewProfitClient(server.URL+"/", nil)

	resp, err := c.Estimate(context.Background(), api.EstimateRequest{
		UnitsSold:          &units,
		SalePrice:          &price,
		ManufacturingPrice: &cost,
		Month:              &month,
		Mode:               &mode,
	})
	require.NoError(t, err)
	assert.Equal(t, 7500.0, resp.Profit)
	assert.Equal(t, "₹7,500.00", resp.ProfitDisplay)
}

func TestProfitClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message": "model inference failed: boom", "requestId": "req-1"}`))
	}))
	defer server.Close()

	units, price, cost, month := 1, 2.0, 1.0, 1
	_, err := NewProfitClient(server.URL, nil).Estimate(context.Background(), api.EstimateRequest{
		UnitsSold: &units, SalePrice: &price, ManufacturingPrice: &cost, Month: &month,
	})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "model inference failed: boom", apiErr.Message)
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.Contains(t, err.Error(), "request id req-1")
}

func TestProfitClient_Dashboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/dashboard/overview":
			assert.Equal(t, "Canada", r.URL.Query().Get("country"))
			_ = json.NewEncoder(w).Encode(api.Overview{Records: 2, TotalSales: 100, TotalProfit: 25, AvgMarginPct: 25})
		case "/api/v1/dashboard/yearly":
			assert.Equal(t, "2014", r.URL.Query().Get("year"))
			_ = json.NewEncoder(w).Encode(api.YearlyTrend{Years: []api.YearlyTotal{{Year: 2014, Sales: 100, Profit: 25}}})
		case "/api/v1/dashboard/countries":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode(api.TopCountries{Countries: []api.CountryTotal{{Country: "Canada", Sales: 100}}})
		case "/api/v1/info":
			_ = json.NewEncoder(w).Encode(api.Info{VersionName: "v0.1.0", Modes: []string{"pure_ml", "business_adjusted"}})
		case "/health":
			_ = json.NewEncoder(w).Encode(api.Status{Status: "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	c := NewProfitClient(server.URL, server.Client())

	overview, err := c.Overview(ctx, DashboardQuery{Country: "Canada"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.Records)

	trend, err := c.YearlyTrend(ctx, DashboardQuery{Year: 2014})
	require.NoError(t, err)
	require.Len(t, trend.Years, 1)

	top, err := c.TopCountries(ctx, DashboardQuery{}, 5)
	require.NoError(t, err)
	assert.Equal(t, "Canada", top.Countries[0].Country)

	info, err := c.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", info.VersionName)

	assert.NoError(t, c.HealthCheck(ctx))
}

func TestProfitClient_UploadDataset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dashboard/dataset", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sales.csv", header.Filename)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.DatasetImport{Records: 42})
	}))
	defer server.Close()

	resp, err := NewProfitClient(server.URL, nil).UploadDataset(context.Background(), "/tmp/data/sales.csv", strings.NewReader("country,year\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.Records)
}
