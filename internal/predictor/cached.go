package predictor

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/kubev2v/profit-planner/internal/estimation"
	"github.com/kubev2v/profit-planner/pkg/metrics"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "profit-planner:prediction"

// Identified is implemented by predictors that can name the model they serve.
type Identified interface {
	ID() string
}

// Cached memoizes the predictions of another predictor.
// Cache failures are logged and bypassed; they never fail a prediction.
type Cached struct {
	next  estimation.Predictor
	cache Cache
	ttl   time.Duration
	id    string
}

var _ estimation.Predictor = (*Cached)(nil)

func NewCached(next estimation.Predictor, cache Cache, ttl time.Duration) *Cached {
	id := "default"
	if named, ok := next.(Identified); ok {
		id = named.ID()
	}
	return &Cached{next: next, cache: cache, ttl: ttl, id: id}
}

func (c *Cached) ID() string {
	return c.id
}

func (c *Cached) Predict(ctx context.Context, row estimation.FeatureVector) ([]float64, error) {
	logger := zap.S().Named("prediction_cache")
	key := c.key(row)

	value, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.IncreasePredictionCacheLookupMetric(metrics.CacheError)
		logger.Warnw("cache lookup failed", "key", key, "error", err)
	case ok:
		var prediction []float64
		if err := json.Unmarshal([]byte(value), &prediction); err == nil && usable(prediction) {
			metrics.IncreasePredictionCacheLookupMetric(metrics.CacheHit)
			return prediction, nil
		}
		metrics.IncreasePredictionCacheLookupMetric(metrics.CacheError)
		logger.Warnw("dropping unreadable cache entry", "key", key)
	default:
		metrics.IncreasePredictionCacheLookupMetric(metrics.CacheMiss)
	}

	prediction, err := c.next.Predict(ctx, row)
	if err != nil {
		return nil, err
	}
	// unusable results are rejected by the estimator; keep them out of the cache so the next call retries
	if !usable(prediction) {
		return prediction, nil
	}

	if data, err := json.Marshal(prediction); err == nil {
		if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
			logger.Warnw("cache store failed", "key", key, "error", err)
		}
	}
	return prediction, nil
}

func usable(prediction []float64) bool {
	if len(prediction) == 0 {
		return false
	}
	for _, v := range prediction {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func (c *Cached) key(row estimation.FeatureVector) string {
	values := row.Values()
	parts := make([]string, 0, len(values)+2)
	parts = append(parts, cacheKeyPrefix, c.id)
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(parts, ":")
}
