package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileInheritsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o\nmax_rounds: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 5, cfg.MaxRounds)
	assert.Equal(t, Default().Provider, cfg.Provider)
	assert.Equal(t, Default().Temperature, cfg.Temperature)
	assert.Equal(t, Default().MaxTokens, cfg.MaxTokens)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvIgnoresMissingFiles(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadEnvReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CHATLAB_TEST_KEY=abc123\n"), 0o644))
	t.Setenv("CHATLAB_TEST_KEY", "")
	os.Unsetenv("CHATLAB_TEST_KEY")

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "abc123", os.Getenv("CHATLAB_TEST_KEY"))
}
