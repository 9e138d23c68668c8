package store

import (
	"context"

	"github.com/MKhiriev/go-key-purger/internal/config"
	"github.com/MKhiriev/go-key-purger/internal/logger"
)

// Storages bundles the store-side collaborators of the purge session.
type Storages struct {
	KeyStore        KeyStore
	CheckpointStore CheckpointStore

	redis *Redis
}

// NewStorages connects to Redis and prepares the checkpoint file storage.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Debug().Msg("creating storages")

	db, err := NewConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		KeyStore:        NewKeyRepository(db, logger),
		CheckpointStore: NewCheckpointFileStorage(cfg.Checkpoint.Path, logger),
		redis:           db,
	}, nil
}

// Close releases the Redis connection pool.
func (s *Storages) Close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}
