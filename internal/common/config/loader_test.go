package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: tourist-guide
workers:
  answer-tourism-query:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30000, cfg.Server.WriteTimeout)
	assert.Equal(t, 28000, cfg.Server.RequestTimeout)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 1440, cfg.Cache.GeocodingTTL)
	assert.Equal(t, 60, cfg.Cache.PlacesTTL)
	assert.Equal(t, 1000, cfg.APIs.Nominatim.MinInterval)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.APIs.Nominatim.BaseURL)
	assert.Equal(t, 10000, cfg.Guide.PlacesRadius)
	assert.Equal(t, 5, cfg.Guide.MaxPlaces)
	assert.InDelta(t, 0.80, cfg.Guide.AutoCorrectAt, 1e-9)
	assert.InDelta(t, 0.6, cfg.Guide.SuggestionCutoff, 1e-9)

	wcfg := GetWorkerConfig(cfg, "answer-tourism-query")
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 5, wcfg.MaxJobsActive)
	assert.Equal(t, 30000, wcfg.Timeout)
	assert.Equal(t, 3, wcfg.MaxRetries)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_GUIDE_REDIS", "cache.internal:6380")

	path := writeConfig(t, `
cache:
  backend: redis
  redis:
    address: ${TEST_GUIDE_REDIS}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Address)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "request deadline not below write timeout",
			body:    "server:\n  write_timeout: 5000\n  request_timeout: 5000\n",
			wantErr: "server.request_timeout",
		},
		{
			name:    "unknown cache backend",
			body:    "cache:\n  backend: memcached\n",
			wantErr: "cache.backend",
		},
		{
			name:    "cutoff above threshold",
			body:    "guide:\n  auto_correct_threshold: 0.5\n  suggestion_cutoff: 0.7\n",
			wantErr: "suggestion_cutoff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_RequestTimeoutFollowsWriteTimeout(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "server:\n  write_timeout: 5000\n"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.RequestTimeout)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"parse-tourism-query": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "parse-tourism-query"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "parse-tourism-query").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown").MaxJobsActive)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, 24*time.Hour, GetMinutes(1440))
}
