package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const appName = "todolist"

// Config represents the application configuration
type Config struct {
	StorageKey string `yaml:"storage_key" validate:"required"`
	Heading    string `yaml:"heading"`
	Backend    string `yaml:"backend" validate:"oneof=memory file sqlite"`
	DataDir    string `yaml:"data_dir" validate:"required_if=Backend file"`
	DBPath     string `yaml:"db_path" validate:"required_if=Backend sqlite"`
	Theme      string `yaml:"theme" validate:"oneof=classic neon mono"`
	LogLevel   string `yaml:"log_level" validate:"oneof=trace debug info warn error"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	dataDir := filepath.Join(".", ".todolist")
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", appName)
	}
	return &Config{
		StorageKey: "todos",
		Heading:    "Todos",
		Backend:    "file",
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, "todos.db"),
		Theme:      "classic",
		LogLevel:   "warn",
	}
}

// Load reads the config at path, or the default location when path is empty.
// A missing file at the default location yields the defaults; a missing
// explicit path is an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/todolist/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		"TODOLIST_STORAGE_KEY": &c.StorageKey,
		"TODOLIST_BACKEND":     &c.Backend,
		"TODOLIST_DATA_DIR":    &c.DataDir,
		"TODOLIST_DB":          &c.DBPath,
		"TODOLIST_THEME":       &c.Theme,
		"TODOLIST_LOG_LEVEL":   &c.LogLevel,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// applyDefaults fills fields a partial file left blank. StorageKey is not
// defaulted here: a file that sets it to "" is caught by Validate.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "todos.db")
	}
}
