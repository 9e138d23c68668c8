package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Redis wraps an established go-redis client. It is created once at startup
// and shared by every repository that talks to the store.
type Redis struct {
	*redis.Client
	logger *logger.Logger
}

// NewConnectRedis parses cfg.URL, applies the configured timeouts and checks
// the connection with PING.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Err(err).Msg("error parsing redis url")
		return nil, fmt.Errorf("%w: %w", ErrParsingRedisURL, err)
	}

	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)

	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Err(err).Str("addr", opts.Addr).Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("%w: %w", ErrConnectingRedis, err)
	}
	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis successfully")

	return &Redis{
		Client: client,
		logger: log,
	}, nil
}
