package cache

import (
	"context"

	"careergenie-jobs/pkg/models"
)

// NoopStore is the pass-through used when caching is disabled or the Redis
// backend is unreachable at startup. Every lookup is a miss and every write
// is dropped, so the engine keeps serving fresh provider results.
type NoopStore struct{}

// NewNoop creates a disabled cache store.
func NewNoop() *NoopStore {
	return &NoopStore{}
}

func (n *NoopStore) Get(ctx context.Context, key string) ([]models.Job, bool) {
	return nil, false
}

func (n *NoopStore) Set(ctx context.Context, key string, jobs []models.Job) {}

func (n *NoopStore) Clear(ctx context.Context) (int64, error) {
	return 0, nil
}

func (n *NoopStore) Stats(ctx context.Context) Stats {
	return Stats{Enabled: false, Backend: "noop"}
}

func (n *NoopStore) Close() error {
	return nil
}
