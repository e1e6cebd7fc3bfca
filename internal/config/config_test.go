package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, []string{
		"serpapi", "google_direct", "jsearch", "careerjet", "linkedin", "indeed",
	}, cfg.Providers.Priority)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "jobs:", cfg.Cache.KeyPrefix)

	assert.Equal(t, 15*time.Second, cfg.Providers.SerpAPI.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Providers.LinkedIn.Timeout)
	assert.Equal(t, "en_US", cfg.Providers.Careerjet.Locale)

	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Scheduler.Interval)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SERPAPI_KEY", "serp-secret")
	t.Setenv("RAPIDAPI_KEY", "rapid-secret")
	t.Setenv("CAREERJET_AFFID", "aff-123")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "serp-secret", cfg.Providers.SerpAPI.APIKey)

	// the shared RapidAPI key covers every RapidAPI-hosted provider
	assert.Equal(t, "rapid-secret", cfg.Providers.JSearch.APIKey)
	assert.Equal(t, "rapid-secret", cfg.Providers.LinkedIn.APIKey)
	assert.Equal(t, "rapid-secret", cfg.Providers.Indeed.APIKey)

	assert.Equal(t, "aff-123", cfg.Providers.Careerjet.APIKey)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Enabled)

	// a database url implicitly enables storage
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "postgres://localhost/jobs", cfg.Storage.PostgresURL)
}

func TestJSearchKeyTakesPrecedenceOverSharedKey(t *testing.T) {
	t.Setenv("JSEARCH_API_KEY", "jsearch-own")
	t.Setenv("RAPIDAPI_KEY", "rapid-shared")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "jsearch-own", cfg.Providers.JSearch.APIKey)
	assert.Equal(t, "rapid-shared", cfg.Providers.LinkedIn.APIKey)
}

func TestYAMLFileWithEnvExpansion(t *testing.T) {
	t.Setenv("TEST_REDIS_URL", "redis://cache.internal:6380")

	yamlContent := `
server:
  port: 3000
redis:
  url: "${TEST_REDIS_URL}"
providers:
  priority:
    - jsearch
    - serpapi
scheduler:
  enabled: true
  searches:
    - query: "DevOps Engineer"
      location: "Mombasa"
      limit: 10
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "redis://cache.internal:6380", cfg.Redis.URL)
	assert.Equal(t, []string{"jsearch", "serpapi"}, cfg.Providers.Priority)
	// fields absent from the file keep their coded defaults
	assert.Equal(t, time.Hour, cfg.Cache.TTL)

	require.Len(t, cfg.Scheduler.Searches, 1)
	assert.Equal(t, "DevOps Engineer", cfg.Scheduler.Searches[0].Query)
	assert.Equal(t, 10, cfg.Scheduler.Searches[0].Limit)
}

func TestMissingYAMLFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestProviderByName(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	pc, ok := cfg.ProviderByName("careerjet")
	assert.True(t, ok)
	assert.Equal(t, "en_US", pc.Locale)

	_, ok = cfg.ProviderByName("monster")
	assert.False(t, ok)
}
