package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
stats_api:
  base_url: "https://stats.example.com"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "nba-query-engine", cfg.App.Name)
	assert.Equal(t, 10000, cfg.StatsAPI.Timeout)
	assert.Equal(t, 8000, cfg.Pipeline.CallTimeout)
	assert.Equal(t, "2025-26", cfg.Pipeline.DefaultSeason)
	assert.Equal(t, 10, cfg.Pipeline.DefaultLeaderRows)
	assert.Equal(t, 0.6, cfg.Pipeline.WeakRuleWeight)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, ":9090", cfg.Server.MetricsAddress)
	assert.Equal(t, 5.0, cfg.Quota.RequestsPerSecond)
}

func TestLoadFromFileRequiresABackend(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "debug"
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats_api.base_url or database.postgres.host")
}

func TestLoadFromFileRequiresRedisWhenCacheEnabled(t *testing.T) {
	path := writeConfig(t, `
stats_api:
  base_url: "https://stats.example.com"
cache:
  enabled: true
database:
  redis:
    address: ""
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.address")
}

func TestSecretOverridesFromEnv(t *testing.T) {
	t.Setenv("STATS_API_KEY", "from-env")

	path := writeConfig(t, `
stats_api:
  base_url: "https://stats.example.com"
  api_key: ""
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.StatsAPI.APIKey)
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host: "localhost", Port: 5432, User: "nba", Password: "secret",
		Database: "nba_stats", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=nba password=secret dbname=nba_stats sslmode=disable",
		p.GetDSN())
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, int64(8000), GetDuration(8000).Milliseconds())
}
