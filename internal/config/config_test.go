package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, SourceStatic, cfg.Finder.Source)
	assert.Equal(t, 300*time.Millisecond, cfg.Finder.SearchDebounce)
	assert.Equal(t, 800*time.Millisecond, cfg.Finder.InitialLoadDelay)
	assert.Equal(t, 30*time.Minute, cfg.Finder.SessionTTL)
	assert.Equal(t, int64(20), cfg.Worker.BatchSize)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoadFile_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nFINDER_SOURCE=postgres\nFINDER_SEARCH_DEBOUNCE_MS=150\nREDIS_HOST=cache\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Finder.Source)
	assert.Equal(t, 150*time.Millisecond, cfg.Finder.SearchDebounce)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FINDER_TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.UTC, cfg.Finder.Location())
}

func TestLoadFile_RejectsUnknownSource(t *testing.T) {
	t.Setenv("FINDER_SOURCE", "csv")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestFinderConfig_LocationFallback(t *testing.T) {
	c := FinderConfig{TimeZone: "Nowhere/Atlantis"}
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, c.Location()).Zone()
	assert.Equal(t, 2*60*60, offset)
}
