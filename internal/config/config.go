// Package config provides configuration loading for the workbook CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/meworkbook/internal/autosave"
	"github.com/roach88/meworkbook/internal/model"
	"github.com/roach88/meworkbook/internal/persist"
)

const (
	// UserConfigDir is the directory for user-level config, under the home
	// directory.
	UserConfigDir = ".config/meworkbook"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// DataDir holds the database, under the home directory.
	DataDir = ".local/share/meworkbook"
	// DatabaseFile is the default database file name.
	DatabaseFile = "workbook.db"
)

// Config represents the complete workbook configuration
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Export   ExportConfig   `yaml:"export"`
	Owner    OwnerConfig    `yaml:"owner"`
}

// StorageConfig configures the durable record store
type StorageConfig struct {
	// Path is the SQLite database file
	Path string `yaml:"path"`
	// Key is the record key the workbook is stored under
	Key string `yaml:"key"`
}

// AutosaveConfig configures the debounced save
type AutosaveConfig struct {
	// Debounce is the quiet window before a save (default: 250ms)
	Debounce time.Duration `yaml:"debounce"`
}

// ExportConfig sets the labels written into exports
type ExportConfig struct {
	App     string `yaml:"app"`
	Version string `yaml:"version"`
}

// OwnerConfig reserves a workbook title for one profile name. Both fields
// empty disables it.
type OwnerConfig struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: defaultDatabasePath(),
			Key:  persist.DefaultKey,
		},
		Autosave: AutosaveConfig{
			Debounce: autosave.DefaultDelay,
		},
		Export: ExportConfig{
			App:     model.ExportApp,
			Version: model.ExportVersion,
		},
	}
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DatabaseFile
	}
	return filepath.Join(home, DataDir, DatabaseFile)
}

// UserConfigPath returns the path of the user config file, or "" when the
// home directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("storage.path is required")
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key is required")
	}
	if c.Autosave.Debounce <= 0 {
		return fmt.Errorf("autosave.debounce must be positive")
	}
	if c.Autosave.Debounce > time.Minute {
		return fmt.Errorf("autosave.debounce must be at most 1m")
	}
	if c.Export.App == "" || c.Export.Version == "" {
		return fmt.Errorf("export.app and export.version are required")
	}
	if (c.Owner.Name == "") != (c.Owner.Title == "") {
		return fmt.Errorf("owner.name and owner.title must be set together")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load resolves the configuration. An explicit path must exist. Without
// one, the user config file is used when present and the defaults
// otherwise. The result is validated.
func Load(path string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	config := DefaultConfig()
	switch {
	case path != "":
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
		logger.Debug("loaded config", slog.String("path", path))
	default:
		userPath := UserConfigPath()
		if userPath == "" {
			break
		}
		loaded, err := LoadFromFile(userPath)
		switch {
		case err == nil:
			config = loaded
			logger.Debug("loaded user config", slog.String("path", userPath))
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("no user config, using defaults", slog.String("path", userPath))
		default:
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
