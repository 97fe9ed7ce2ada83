package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRepoConcurrency, cfg.RepoConcurrency)
	assert.Equal(t, DefaultPRConcurrency, cfg.PRConcurrency)
	assert.Equal(t, DefaultNewWindowDays, cfg.NewWindowDays)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Repos)
}

func TestLoadFromAppliesDefaultsToMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"org": "spacebank",
		"repos": ["payments", "cards"],
		"repoConcurrency": 6
	}`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "spacebank", cfg.Org)
	assert.Equal(t, []string{"payments", "cards"}, cfg.Repos)
	assert.Equal(t, 6, cfg.RepoConcurrency)
	assert.Equal(t, DefaultPRConcurrency, cfg.PRConcurrency)
	assert.Equal(t, DefaultNewWindowDays, cfg.NewWindowDays)
}

func TestLoadFromMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestNewWindow(t *testing.T) {
	cfg := &Config{NewWindowDays: 2}
	assert.Equal(t, 48*time.Hour, cfg.NewWindow())
}
