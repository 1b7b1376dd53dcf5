package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDefaults(t *testing.T) {
	// Point at an explicit file so a developer's local config.yaml does
	// not leak into the test.
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 3, cfg.AI.MaxRetries)
	assert.Equal(t, []string{"dictionary", "external", "dictionary", "dictionary"}, cfg.Pipeline.Stages)
	assert.Equal(t, 5, cfg.Pipeline.MaxDictionaryPasses)
}

func TestNewManagerFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9090"
pipeline:
  stages: ["dictionary"]
  max_dictionary_passes: 2
redis:
  addr: "redis:6379"
`), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"dictionary"}, cfg.Pipeline.Stages)
	assert.Equal(t, 2, cfg.Pipeline.MaxDictionaryPasses)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}
