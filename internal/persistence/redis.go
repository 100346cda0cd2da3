package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/config"
)

// ErrRedisUnavailable is returned when a required Redis does not answer.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Redis wraps the go-redis client. The API only probes it for readiness;
// the storefront keeps its session namespaces there.
type Redis struct {
	Client *redis.Client
	cfg    config.RedisConfig
}

// RedisOptions turns configuration into client options. REDIS_URL wins over
// the discrete address fields.
func RedisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// NewRedis builds a client and checks connectivity. An unreachable server is
// logged and tolerated; callers that cannot run without it use Require.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	r := &Redis{Client: redis.NewClient(opts), cfg: cfg}

	if err := r.Ping(ctx); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", opts.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	}
	return r, nil
}

// Require fails with ErrRedisUnavailable when the server does not answer.
func (r *Redis) Require(ctx context.Context) error {
	if err := r.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity within the configured ping timeout.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.PingTimeout())
	defer cancel()
	return r.Client.Ping(ctx).Err()
}
