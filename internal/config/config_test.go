package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.MaxRetries)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 0.25, cfg.Validate.MinDiversity)
	assert.Equal(t, 4, cfg.Retrieval.TopK)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
llm:
  provider: mock
pipeline:
  max_retries: 5
  workers: 2
  stage_timeout: 10s
validate:
  min_diversity: 0.4
store:
  path: /tmp/qf-test.db
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 5, cfg.Pipeline.MaxRetries)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, 10*time.Second, cfg.Pipeline.StageTimeout)
	assert.Equal(t, 0.4, cfg.Validate.MinDiversity)
	assert.Equal(t, "/tmp/qf-test.db", cfg.Store.Path)

	// untouched sections keep their defaults
	assert.Equal(t, 4, cfg.Retrieval.TopK)
	assert.Equal(t, 400, cfg.Validate.MaxTextLen)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv("QUIZFORGE_CONFIG", "/etc/quizforge/custom.yaml")
	assert.Equal(t, "/etc/quizforge/custom.yaml", DefaultPath())

	t.Setenv("QUIZFORGE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "quizforge", "config.yaml"), DefaultPath())
}
