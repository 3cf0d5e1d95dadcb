// Package config loads taskboard settings from defaults, an optional TOML file
// and environment variables. CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"taskboard/internal/logging"
	"taskboard/internal/store"
)

const (
	EnvConfigDir = "TASKBOARD_CONFIG_DIR"
	EnvDataDir   = "TASKBOARD_DATA_DIR"
	EnvBackend   = "TASKBOARD_BACKEND"
	EnvLogLevel  = "TASKBOARD_LOG_LEVEL"
	EnvLogFormat = "TASKBOARD_LOG_FORMAT"

	configFileName = "config.toml"
)

type Config struct {
	DataDir        string         `toml:"data_dir"`
	Backend        string         `toml:"backend"`
	LogLevel       string         `toml:"log_level"`
	LogFormat      string         `toml:"log_format"`
	DefaultProject DefaultProject `toml:"default_project"`
}

type DefaultProject struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

// Dir returns the config directory: $TASKBOARD_CONFIG_DIR or ~/.taskboard.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskboard"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func Defaults(dir string) *Config {
	return &Config{
		DataDir:   filepath.Join(dir, "data"),
		Backend:   string(store.BackendSQLite),
		LogLevel:  "warn",
		LogFormat: logging.FormatText,
		DefaultProject: DefaultProject{
			Name:  store.DefaultProjectName,
			Color: store.DefaultProjectColor,
		},
	}
}

// Load applies defaults, then the config file if present, then the environment.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	cfg := Defaults(dir)

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.DataDir, EnvDataDir)
	set(&cfg.Backend, EnvBackend)
	set(&cfg.LogLevel, EnvLogLevel)
	set(&cfg.LogFormat, EnvLogFormat)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is empty")
	}
	if _, err := store.ParseBackend(c.Backend); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
