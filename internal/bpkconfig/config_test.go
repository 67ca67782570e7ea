package bpkconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.DefaultCodec)
	assert.Equal(t, 2048, cfg.BufferSize)
}

func TestLoadWithNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadMergesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bpk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nbuffer_size: 4096\n"), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, "", cfg.DefaultCodec)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEnvOverridesDefault(t *testing.T) {
	t.Setenv("BPK_LOG_LEVEL", "warn")
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
