package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. TASKER_STORAGE_BACKEND.
const EnvPrefix = "TASKER"

// ResolvePath returns the config file path for baseDir. An empty path means
// DefaultPath; relative paths are taken relative to baseDir.
func ResolvePath(baseDir, path string) string {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return resolve(baseDir, path)
}

// Load reads the config file named by the "config" key of v (DefaultPath when
// unset), applies TASKER_* environment overrides and a .env file from
// baseDir/.tasker, and returns the normalized result. A missing config file
// is not an error.
func Load(v *viper.Viper, baseDir string) (Config, error) {
	if err := loadDotEnv(filepath.Join(baseDir, DefaultDir, ".env")); err != nil {
		return Config{}, err
	}

	defaults := Default()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.path", "")
	v.SetDefault("log.debug", defaults.Log.Debug)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := ResolvePath(baseDir, v.GetString("config"))
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := ValidateDocument(data); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Debug().Str("path", path).Msg("config loaded")
	case errors.Is(err, fs.ErrNotExist):
		log.Debug().Str("path", path).Msg("config file missing, using defaults")
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(trimStringHook())); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(baseDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write stores cfg as YAML at path, creating its directory.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("env file loaded")
	return nil
}

func trimStringHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from != reflect.String || to != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(reflect.ValueOf(data).String()), nil
	}
}
