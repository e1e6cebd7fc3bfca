package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
)

// newUnreachableStore builds a RedisStore whose backend refuses every
// connection, simulating Redis dying after startup.
func newUnreachableStore(t *testing.T) *RedisStore {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	return &RedisStore{
		client: client,
		prefix: "jobs:",
		ttl:    time.Hour,
		logger: logging.GetGlobalLogger(),
	}
}

func TestRedisStoreDegradesWhenBackendDies(t *testing.T) {
	store := newUnreachableStore(t)
	ctx := context.Background()

	// the first failed read is a miss and flips the store into
	// pass-through mode
	jobs, ok := store.Get(ctx, "jobs:abc")
	assert.False(t, ok)
	assert.Nil(t, jobs)
	assert.True(t, store.degraded())

	// subsequent reads and writes short-circuit instead of dialing the
	// dead backend again
	store.Set(ctx, "jobs:abc", []models.Job{{Title: "Engineer"}})
	jobs, ok = store.Get(ctx, "jobs:abc")
	assert.False(t, ok)
	assert.Nil(t, jobs)
	assert.True(t, store.degraded())
}

func TestDegradedStatsReportError(t *testing.T) {
	store := newUnreachableStore(t)
	store.markDegraded(errors.New("dial tcp: connection refused"))

	stats := store.Stats(context.Background())
	assert.True(t, stats.Enabled)
	assert.Equal(t, "redis", stats.Backend)
	assert.Zero(t, stats.Keys)
	assert.Equal(t, "cache backend unreachable", stats.Error)
}

func TestMarkDegradedKeepsFirstWindow(t *testing.T) {
	store := newUnreachableStore(t)

	store.markDegraded(errors.New("connection refused"))
	store.mu.Lock()
	first := store.degradedUntil
	store.mu.Unlock()

	// failures inside an open window neither extend it nor log again
	store.markDegraded(errors.New("connection refused"))
	store.mu.Lock()
	second := store.degradedUntil
	store.mu.Unlock()

	assert.Equal(t, first, second)
}

func TestDegradedStoreProbesAgainAfterWindow(t *testing.T) {
	store := newUnreachableStore(t)

	store.markDegraded(errors.New("connection refused"))
	assert.True(t, store.degraded())

	store.mu.Lock()
	store.degradedUntil = time.Now().Add(-time.Second)
	store.mu.Unlock()

	assert.False(t, store.degraded())
}

func TestMarkHealthyEndsDegradation(t *testing.T) {
	store := newUnreachableStore(t)

	store.markDegraded(errors.New("connection refused"))
	store.markHealthy()
	assert.False(t, store.degraded())
}
