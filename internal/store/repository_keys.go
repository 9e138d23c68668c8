package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-key-purger/internal/logger"
)

// keyRepository is the Redis-backed [KeyStore]. Enumeration uses SCAN with
// MATCH and COUNT, deletion a single variadic DEL.
type keyRepository struct {
	db     *Redis
	logger *logger.Logger
}

// NewKeyRepository constructs a [KeyStore] over an established connection.
func NewKeyRepository(db *Redis, logger *logger.Logger) KeyStore {
	return &keyRepository{
		db:     db,
		logger: logger,
	}
}

func (k *keyRepository) ScanPage(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error) {
	keys, next, err := k.db.Scan(ctx, cursor, pattern, count).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: cursor %d: %w", ErrScanningKeys, cursor, err)
	}

	return keys, next, nil
}

func (k *keyRepository) Delete(ctx context.Context, keys []string) (int64, error) {
	// DEL without arguments is a protocol error
	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := k.db.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %d keys: %w", ErrDeletingKeys, len(keys), err)
	}

	return deleted, nil
}
