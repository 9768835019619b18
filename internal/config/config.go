package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config controls how fieldview measures the viewport, which compensation
// catalog it applies and where it logs.
type Config struct {
	// Debounce is the quiescence window for resize bursts.
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
	// CellWidthPx is the pixel width of one terminal column.
	CellWidthPx int `yaml:"cell_width_px" env:"CELL_WIDTH_PX"`
	// UserAgent identifies the client device. Touch agents get the touch overrides.
	UserAgent string `yaml:"user_agent" env:"USER_AGENT"`
	// CatalogPath points at a YAML compensation catalog. Empty means built-in.
	CatalogPath  string `yaml:"catalog_path" env:"CATALOG"`
	WatchCatalog bool   `yaml:"watch_catalog" env:"WATCH_CATALOG"`
	Theme        string `yaml:"theme" env:"THEME"`

	Sample SampleConfig `yaml:"sample" envPrefix:"SAMPLE_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`
}

// SampleConfig sizes the in-memory readings the dashboard shows.
type SampleConfig struct {
	Records int   `yaml:"records" env:"RECORDS"`
	Seed    int64 `yaml:"seed" env:"SEED"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Path        string `yaml:"path" env:"PATH"`
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FIELDVIEW_"

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Debounce:    250 * time.Millisecond,
		CellWidthPx: 8,
		Theme:       "auto",
		Sample: SampleConfig{
			Records: 20,
			Seed:    1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.fieldview/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".fieldview", "config.yaml")
}

// LoadConfig reads the configuration file, falling back to defaults for
// anything it leaves out, then applies FIELDVIEW_* environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var levels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("debounce must be positive, got %s", c.Debounce))
	}
	if c.CellWidthPx <= 0 {
		errs = append(errs, fmt.Errorf("cell_width_px must be positive, got %d", c.CellWidthPx))
	}
	if c.Sample.Records < 0 {
		errs = append(errs, fmt.Errorf("sample.records must not be negative, got %d", c.Sample.Records))
	}
	if !levels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if c.WatchCatalog && c.CatalogPath == "" {
		errs = append(errs, errors.New("watch_catalog requires catalog_path"))
	}
	return errors.Join(errs...)
}
