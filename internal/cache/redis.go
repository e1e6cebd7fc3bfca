package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
)

// degradedRetry is how long Get and Set short-circuit after a backend
// failure before probing Redis again.
const degradedRetry = 30 * time.Second

// RedisStore caches search results in Redis under the configured key prefix.
// A backend failure at call time flips the store into pass-through mode:
// the outage is logged once per retry window, not on every request, and
// reads and writes short-circuit until the backend answers again.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logging.Logger

	mu            sync.Mutex
	degradedUntil time.Time
}

// NewRedis connects to Redis and verifies the connection with a ping. A
// connection failure is returned to the caller, which falls back to the noop
// store; the engine never refuses to start because the cache is down.
func NewRedis(cfg *config.Config) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.Cache.KeyPrefix,
		ttl:    cfg.Cache.TTL,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// degraded reports whether the store is currently in pass-through mode.
func (s *RedisStore) degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().Before(s.degradedUntil)
}

// markDegraded flips the store into pass-through mode until the retry
// window elapses. The first failure of an outage is logged; calls arriving
// while the window is open stay silent.
func (s *RedisStore) markDegraded(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Now().Before(s.degradedUntil) {
		return
	}
	s.degradedUntil = time.Now().Add(degradedRetry)
	s.logger.Warn("Cache backend unreachable, degrading to pass-through", map[string]interface{}{
		"retry_in": degradedRetry.String(),
		"error":    err.Error(),
	})
}

// markHealthy ends pass-through mode after a successful round trip.
func (s *RedisStore) markHealthy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degradedUntil.IsZero() {
		return
	}
	s.degradedUntil = time.Time{}
	s.logger.Info("Cache backend reachable again, caching resumed")
}

// Get reads and unwraps one envelope. Backend errors and schema mismatches
// both count as misses; a backend error additionally degrades the store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]models.Job, bool) {
	if s.degraded() {
		return nil, false
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		s.markHealthy()
		return nil, false
	}
	if err != nil {
		s.markDegraded(err)
		return nil, false
	}
	s.markHealthy()

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("Cache entry unreadable, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	if env.SchemaVersion != SchemaVersion {
		s.logger.Debug("Cache entry has stale schema version", map[string]interface{}{
			"key":     key,
			"version": env.SchemaVersion,
		})
		return nil, false
	}

	return env.Jobs, true
}

// Set writes one envelope under the configured TTL. Failures are dropped so
// the response path is never blocked on the cache; a backend failure
// degrades the store.
func (s *RedisStore) Set(ctx context.Context, key string, jobs []models.Job) {
	if s.degraded() {
		return
	}

	env := envelope{
		SchemaVersion: SchemaVersion,
		CachedAt:      time.Now().UTC(),
		Jobs:          jobs,
	}

	data, err := json.Marshal(env)
	if err != nil {
		s.logger.Error("Failed to serialize cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.markDegraded(err)
		return
	}
	s.markHealthy()
}

// Clear deletes every key under the prefix using SCAN, never KEYS, so a
// large cache does not block the server.
func (s *RedisStore) Clear(ctx context.Context) (int64, error) {
	var deleted int64
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("deleting cache key %s: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("scanning cache keys: %w", err)
	}

	s.logger.Info("Cache cleared", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}

// Stats counts the keys under the prefix and sums their payload sizes for
// the admin surface.
func (s *RedisStore) Stats(ctx context.Context) Stats {
	stats := Stats{
		Enabled: true,
		Backend: "redis",
		TTL:     s.ttl,
	}

	if s.degraded() {
		stats.Error = "cache backend unreachable"
		return stats
	}

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		stats.Keys++
		size, err := s.client.StrLen(ctx, iter.Val()).Result()
		if err != nil {
			continue
		}
		stats.Bytes += size
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("Cache stats scan failed", map[string]interface{}{
			"error": err.Error(),
		})
		stats.Error = err.Error()
	}

	return stats
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
