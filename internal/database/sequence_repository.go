package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SequenceRepo hands out process-independent ids from the key-value backend.
type SequenceRepo struct {
	kv *redis.Client
}

// NewSequenceRepo creates a SequenceRepo.
func NewSequenceRepo(kv *redis.Client) *SequenceRepo {
	return &SequenceRepo{kv: kv}
}

// NextGlobalID atomically increments and returns the global id counter.
func (r *SequenceRepo) NextGlobalID(ctx context.Context) (int64, error) {
	n, err := r.kv.Incr(ctx, globalIDKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", globalIDKey, err)
	}
	return n, nil
}
