// Package config loads the settings of the fortune binaries.
//
// Settings come from DefaultConfig, then an optional YAML file, then
// FORTUNE_* environment variables. Command-line flags are applied by the
// binaries on top of the result.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/meigma/fortune"
	"github.com/meigma/fortune/render"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "fortune"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings shared by the fortune binaries.
type Config struct {
	// Directory holds the category data and index files.
	// Default: "/fortune"
	Directory string `yaml:"directory" envconfig:"DIRECTORY"`

	// Format is the content type fortunes are rendered in.
	// Default: "text/plain"
	Format string `yaml:"format" envconfig:"FORMAT"`

	// LogLevel is one of debug, info, warn or error.
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// StrictOffsets rejects indexes whose offsets decrease at load time.
	StrictOffsets bool `yaml:"strict_offsets" envconfig:"STRICT_OFFSETS"`

	// Decompress serves zstd-compressed ".zst" category files.
	Decompress bool `yaml:"decompress" envconfig:"DECOMPRESS"`

	// MaxDecoderMemory bounds the decoded size of each compressed file.
	// Default: 256 MiB
	MaxDecoderMemory uint64 `yaml:"max_decoder_memory" envconfig:"MAX_DECODER_MEMORY"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Directory:        "/fortune",
		Format:           "text/plain",
		LogLevel:         "info",
		MaxDecoderMemory: fortune.DefaultMaxDecoderMemory,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty) and then the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("%w: directory is empty", ErrInvalid)
	}
	if _, err := render.Parse(c.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalid, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q: %w", ErrInvalid, c.LogLevel, err)
	}
	return level, nil
}

// StoreOptions returns the store options the settings call for.
func (c *Config) StoreOptions(logger *slog.Logger) []fortune.Option {
	return []fortune.Option{
		fortune.WithLogger(logger),
		fortune.WithStrictOffsets(c.StrictOffsets),
	}
}

// Provider returns the provider serving Directory, wrapped for
// decompression when Decompress is set.
func (c *Config) Provider() fortune.Provider {
	p := fortune.OSProvider()
	if c.Decompress {
		p = fortune.NewDecompressingProvider(p, fortune.WithMaxDecoderMemory(c.MaxDecoderMemory))
	}
	return p
}
