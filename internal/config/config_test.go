package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/fortune"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fortune.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "/fortune", cfg.Directory)
	assert.Equal(t, "text/plain", cfg.Format)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
directory: /usr/share/games/fortunes
format: application/json
log_level: debug
strict_offsets: true
decompress: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/share/games/fortunes", cfg.Directory)
	assert.Equal(t, "application/json", cfg.Format)
	assert.True(t, cfg.StrictOffsets)
	assert.True(t, cfg.Decompress)
	assert.Equal(t, uint64(fortune.DefaultMaxDecoderMemory), cfg.MaxDecoderMemory, "unset keys keep their defaults")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "directory: /from/file\nformat: text/html\n")
	t.Setenv("FORTUNE_DIRECTORY", "/from/env")
	t.Setenv("FORTUNE_LOG_LEVEL", "warn")
	t.Setenv("FORTUNE_DECOMPRESS", "true")
	t.Setenv("FORTUNE_MAX_DECODER_MEMORY", "1024")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Directory)
	assert.Equal(t, "text/html", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Decompress)
	assert.Equal(t, uint64(1024), cfg.MaxDecoderMemory)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "directory: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("FORTUNE_STRICT_OFFSETS", "maybe")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "process environment")
	})

	t.Run("invalid setting", func(t *testing.T) {
		_, err := Load(writeConfig(t, "format: image/png\n"))
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty directory", mutate: func(c *Config) { c.Directory = "" }},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "yaml" }},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	require.NoError(t, DefaultConfig().Validate())
}

func TestProvider(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0o644))

	cfg := DefaultConfig()
	names, err := cfg.Provider().List(filepath.ToSlash(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"plain"}, names)

	cfg.Decompress = true
	_, err = cfg.Provider().Read(filepath.ToSlash(filepath.Join(dir, "missing")))
	require.ErrorIs(t, err, fortune.ErrResourceNotFound)

	assert.Len(t, cfg.StoreOptions(slog.Default()), 2)
}
