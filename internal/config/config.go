// Package config provides configuration management for the journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "github.com/pritdesai016/theoquity-journal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LedgerConfig selects and parameterizes the ledger backend.
type LedgerConfig struct {
	Backend string `mapstructure:"backend"` // "memory", "sqlite"
	DBPath  string `mapstructure:"db_path"` // sqlite only
}

// UIConfig holds CLI output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".theoquity"
	}
	return filepath.Join(home, ".config", "theoquity")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := DefaultConfigDir()
	return &Config{
		Ledger: LedgerConfig{
			Backend: "memory",
			DBPath:  filepath.Join(dir, "journal.db"),
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "02-Jan-2006",
			TimeFormat:   "15:04:05",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(dir, "logs", "theoquity.log"),
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
	}
}

// Load reads configuration from configDir (or the default directory when
// empty), layering config.yaml over the built-in defaults. A missing config
// file is not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	def := Default()
	v.SetDefault("ledger.backend", def.Ledger.Backend)
	v.SetDefault("ledger.db_path", def.Ledger.DBPath)
	v.SetDefault("ui.color_enabled", def.UI.ColorEnabled)
	v.SetDefault("ui.date_format", def.UI.DateFormat)
	v.SetDefault("ui.time_format", def.UI.TimeFormat)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.console", def.Logging.Console)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.file_path", def.Logging.FilePath)
	v.SetDefault("logging.max_size", def.Logging.MaxSize)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)
	v.SetDefault("logging.max_age", def.Logging.MaxAge)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Ledger.Backend {
	case "memory", "sqlite":
	default:
		return apperrors.Wrapf(apperrors.ErrConfigInvalid,
			"unknown ledger backend %q", c.Ledger.Backend)
	}
	if c.Ledger.Backend == "sqlite" && c.Ledger.DBPath == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "sqlite backend requires ledger.db_path")
	}
	return nil
}
