// Package config provides configuration file support for stockcheck.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nxmods/stockcheck/pkg/errclass"
	"github.com/nxmods/stockcheck/pkg/fsutil"
	"github.com/nxmods/stockcheck/pkg/logging"
	"github.com/nxmods/stockcheck/pkg/stock"
)

// Config represents the stockcheck configuration.
type Config struct {
	Platform      stock.Platform `json:"platform" yaml:"platform"`
	NewIsModified bool           `json:"new_is_modified" yaml:"new_is_modified"`
	Workers       int            `json:"workers" yaml:"workers"`
	Datasets      DatasetConfig  `json:"datasets" yaml:"datasets"`
	Report        ReportConfig   `json:"report" yaml:"report"`
	Logging       LoggingConfig  `json:"logging" yaml:"logging"`
}

// DatasetConfig points at stock tables replacing the embedded ones.
// Relative paths are resolved against the config file's directory.
type DatasetConfig struct {
	WiiU   string `json:"wiiu,omitempty" yaml:"wiiu,omitempty"`
	Switch string `json:"switch,omitempty" yaml:"switch,omitempty"`
}

// For returns the override table path for p, or "" for the embedded table.
func (d DatasetConfig) For(p stock.Platform) string {
	switch p {
	case stock.WiiU:
		return d.WiiU
	case stock.Switch:
		return d.Switch
	default:
		return ""
	}
}

// ReportConfig configures scan reports.
type ReportConfig struct {
	Format string `json:"format" yaml:"format"` // json, yaml, cbor
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // json, text
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Platform: stock.WiiU,
		Report: ReportConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath returns the per-user config location,
// e.g. ~/.config/stockcheck/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stockcheck", "config.yaml")
}

// Load reads configuration from path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errclass.ErrConfigInvalid.WithMessagef("parse %s: %v", path, err)
	}

	base := filepath.Dir(path)
	cfg.Datasets.WiiU = resolve(base, cfg.Datasets.WiiU)
	cfg.Datasets.Switch = resolve(base, cfg.Datasets.Switch)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errclass.ErrConfigInvalid.WithMessagef("workers must not be negative: %d", c.Workers)
	}
	switch c.Report.Format {
	case "json", "yaml", "cbor":
	default:
		return errclass.ErrConfigInvalid.WithMessagef("report.format must be json, yaml or cbor: %q", c.Report.Format)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}

// Save writes configuration to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
