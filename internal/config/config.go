// Package config provides configuration loading and management for tasker.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// BackendJSON stores tasks in a JSON file.
	BackendJSON = "json"
	// BackendSQLite stores tasks in a SQLite database.
	BackendSQLite = "sqlite"

	// DefaultDir holds the config file and the .env file.
	DefaultDir = ".tasker"
	// DefaultFile is the config file name inside DefaultDir.
	DefaultFile = "config.yaml"

	defaultJSONPath   = "tasks.json"
	defaultSQLitePath = "tasks.db"
)

// DefaultPath is the config path used when --config is not given.
var DefaultPath = filepath.Join(DefaultDir, DefaultFile)

// Config is the root configuration.
type Config struct {
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Log     Log     `json:"log"     yaml:"log"     mapstructure:"log"`
}

// Storage selects the task backend.
type Storage struct {
	Backend string `json:"backend"        yaml:"backend"        mapstructure:"backend"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// Log controls diagnostic output.
type Log struct {
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: BackendJSON,
			Path:    defaultJSONPath,
		},
	}
}

// Normalize lower-cases the backend name, fills in the default path for it and
// resolves a relative path against baseDir.
func (c *Config) Normalize(baseDir string) error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendJSON
	}
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = defaultPathFor(c.Storage.Backend)
	}
	c.Storage.Path = resolve(baseDir, c.Storage.Path)
	return nil
}

func defaultPathFor(backend string) string {
	if backend == BackendSQLite {
		return defaultSQLitePath
	}
	return defaultJSONPath
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
