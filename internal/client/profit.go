package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	api "github.com/kubev2v/profit-planner/api/v1alpha1"
	"github.com/kubev2v/profit-planner/pkg/requestid"
)

// ProfitClient is an HTTP client for the profit-planner API.
type ProfitClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewProfitClient(baseURL string, httpClient *http.Client) *ProfitClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &ProfitClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError is a non-2xx answer of the API server.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (request id %s)", e.RequestID)
	}
	return msg
}

// DashboardQuery narrows the dashboard endpoints. Zero values do not filter.
type DashboardQuery struct {
	Country string
	Segment string
	Year    int
}

func (q DashboardQuery) values() url.Values {
	v := url.Values{}
	if q.Country != "" {
		v.Set("country", q.Country)
	}
	if q.Segment != "" {
		v.Set("segment", q.Segment)
	}
	if q.Year != 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	return v
}

func (c *ProfitClient) Estimate(ctx context.Context, req api.EstimateRequest) (*api.EstimateResponse, error) {
	var resp api.EstimateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/profit/estimate", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ProfitClient) Overview(ctx context.Context, query DashboardQuery) (*api.Overview, error) {
	var resp api.Overview
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/overview", query.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ProfitClient) YearlyTrend(ctx context.Context, query DashboardQuery) (*api.YearlyTrend, error) {
	var resp api.YearlyTrend
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/yearly", query.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TopCountries returns the countries with the most sales; limit <= 0 lets the server choose.
func (c *ProfitClient) TopCountries(ctx context.Context, query DashboardQuery, limit int) (*api.TopCountries, error) {
	values := query.values()
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var resp api.TopCountries
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/countries", values, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadDataset replaces the server's sales dataset with content, sent as a multipart form.
func (c *ProfitClient) UploadDataset(ctx context.Context, filename string, content io.Reader) (*api.DatasetImport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copying file into multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	var resp api.DatasetImport
	if err := c.send(ctx, http.MethodPost, "/api/v1/dashboard/dataset", nil, mw.FormDataContentType(), &buf, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ProfitClient) Info(ctx context.Context) (*api.Info, error) {
	var resp api.Info
	if err := c.do(ctx, http.MethodGet, "/api/v1/info", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ProfitClient) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *ProfitClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if in == nil {
		return c.send(ctx, method, path, query, "", nil, out)
	}

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.send(ctx, method, path, query, "application/json", bytes.NewReader(b), out)
}

func (c *ProfitClient) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	requestid.Propagate(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call profit-planner api: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		var e api.Error
		if json.Unmarshal(bodyBytes, &e) == nil && e.Message != "" {
			apiErr.Message = e.Message
			if e.RequestId != nil {
				apiErr.RequestID = *e.RequestId
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
