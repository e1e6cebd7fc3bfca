package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-jobs/pkg/models"
)

func TestNoopStoreIsAlwaysAMiss(t *testing.T) {
	store := NewNoop()
	ctx := context.Background()

	store.Set(ctx, "jobs:abc", []models.Job{{Title: "Engineer"}})

	jobs, ok := store.Get(ctx, "jobs:abc")
	assert.False(t, ok)
	assert.Nil(t, jobs)

	deleted, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	stats := store.Stats(ctx)
	assert.False(t, stats.Enabled)
	assert.Equal(t, "noop", stats.Backend)

	assert.NoError(t, store.Close())
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := envelope{
		SchemaVersion: SchemaVersion,
		CachedAt:      time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC),
		Jobs: []models.Job{
			{
				Title:    "Data Engineer",
				Company:  models.Company{Name: "Acme"},
				Source:   models.SourceSerpAPI,
				IsActive: true,
			},
		},
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// wire layout is part of the cache contract
	assert.Contains(t, string(data), `"schema_version":1`)
	assert.Contains(t, string(data), `"cached_at":"2025-11-02T08:00:00Z"`)

	var decoded envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, env.SchemaVersion, decoded.SchemaVersion)
	assert.True(t, env.CachedAt.Equal(decoded.CachedAt))
	require.Len(t, decoded.Jobs, 1)
	assert.Equal(t, "Data Engineer", decoded.Jobs[0].Title)
}

func TestStaleSchemaVersionDecodes(t *testing.T) {
	data := []byte(`{"schema_version":0,"cached_at":"2025-01-01T00:00:00Z","jobs":[]}`)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.NotEqual(t, SchemaVersion, env.SchemaVersion)
}
