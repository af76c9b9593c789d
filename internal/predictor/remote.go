package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/pkg/requestid"
)

const defaultRemoteTimeout = 5 * time.Second

// Remote calls a model server speaking the TensorFlow Serving REST predict format.
type Remote struct {
	url        string
	httpClient *http.Client
}

var _ estimation.Predictor = (*Remote)(nil)

func NewRemote(url string, timeout time.Duration) *Remote {
	if timeout == 0 {
		timeout = defaultRemoteTimeout
	}
	return &Remote{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictRequest struct {
	Instances []map[string]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

func (r *Remote) ID() string {
	return r.url
}

func (r *Remote) Predict(ctx context.Context, row estimation.FeatureVector) ([]float64, error) {
	body, err := json.Marshal(predictRequest{Instances: []map[string]float64{row.Record()}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.Header, id)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call model server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewErrRemoteStatus(resp.StatusCode, string(bodyBytes))
	}

	var predictResp predictResponse
	if err := json.Unmarshal(bodyBytes, &predictResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return predictResp.Predictions, nil
}
