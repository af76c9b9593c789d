package predictor

import (
	"context"
	"errors"

	"github.com/kubev2v/profit-planner/internal/config"
	"github.com/kubev2v/profit-planner/internal/estimation"
	"go.uber.org/zap"
)

// New builds the predictor described by cfg: the remote model server when a URL is configured,
// the linear model artifact otherwise. A Redis cache is put in front when an address is set.
func New(ctx context.Context, cfg *config.Config) (estimation.Predictor, error) {
	logger := zap.S().Named("predictor")

	var p estimation.Predictor
	switch {
	case cfg.Predictor.URL != "":
		p = NewRemote(cfg.Predictor.URL, cfg.Predictor.Timeout)
		logger.Infow("using remote model server", "url", cfg.Predictor.URL, "timeout", cfg.Predictor.Timeout)
	case cfg.Predictor.ModelPath != "":
		model, err := LoadLinearModel(cfg.Predictor.ModelPath)
		if err != nil {
			return nil, err
		}
		p = model
		logger.Infow("loaded model artifact", "model", model.ID(), "path", cfg.Predictor.ModelPath)
	default:
		return nil, errors.New("no predictor configured: set a model path or a model server url")
	}

	if cfg.Cache.RedisAddress == "" {
		return p, nil
	}

	cache := NewRedisCache(cfg.Cache.RedisAddress, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		// predictions still work, every lookup will just miss
		logger.Warnw("prediction cache unreachable", "address", cfg.Cache.RedisAddress, "error", err)
	} else {
		logger.Infow("prediction cache enabled", "address", cfg.Cache.RedisAddress, "ttl", cfg.Cache.TTL)
	}
	return NewCached(p, cache, cfg.Cache.TTL), nil
}
