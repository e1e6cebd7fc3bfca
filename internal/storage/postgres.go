// Package storage persists aggregated jobs to Postgres. The sink is
// best-effort and fully decoupled from the response path: the orchestrator
// hands it merged results asynchronously and ignores its failures.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careergenie-jobs/internal/aggregator"
	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging"
	"careergenie-jobs/pkg/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id            BIGSERIAL PRIMARY KEY,
    source        TEXT        NOT NULL,
    dedup_key     TEXT        NOT NULL,
    title         TEXT        NOT NULL,
    company       TEXT        NOT NULL,
    payload       JSONB       NOT NULL,
    posted_at     TIMESTAMPTZ,
    first_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_seen_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    is_active     BOOLEAN     NOT NULL DEFAULT true,
    UNIQUE (source, dedup_key)
)`

const upsertJob = `
INSERT INTO jobs (source, dedup_key, title, company, payload, posted_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (source, dedup_key) DO UPDATE SET
    title        = EXCLUDED.title,
    company      = EXCLUDED.company,
    payload      = EXCLUDED.payload,
    posted_at    = EXCLUDED.posted_at,
    last_seen_at = now(),
    is_active    = true`

// PostgresSink writes jobs into the jobs table with an idempotent upsert, so
// re-running the same search refreshes rows instead of duplicating them.
type PostgresSink struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPostgres connects the sink and ensures the jobs table exists.
func NewPostgres(ctx context.Context, cfg *config.Config) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, cfg.Storage.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring jobs table: %w", err)
	}

	return &PostgresSink{
		pool:   pool,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// SaveJobs upserts one batch of jobs in a single round trip.
func (s *PostgresSink) SaveJobs(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range jobs {
		payload, err := json.Marshal(jobs[i])
		if err != nil {
			return fmt.Errorf("serializing job %q: %w", jobs[i].Title, err)
		}

		batch.Queue(upsertJob,
			jobs[i].Source,
			dedupKey(&jobs[i]),
			jobs[i].Title,
			jobs[i].Company.Name,
			payload,
			jobs[i].PostedAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range jobs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upserting job batch: %w", err)
		}
	}

	s.logger.Debug("Persisted job batch", map[string]interface{}{
		"jobs": len(jobs),
	})
	return nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() {
	s.pool.Close()
}

// dedupKey identifies a job within its source: the provider's stable id when
// it has one, the cross-provider signature otherwise.
func dedupKey(job *models.Job) string {
	if job.ExternalID != nil && *job.ExternalID != "" {
		return *job.ExternalID
	}
	return aggregator.Signature(job)
}
