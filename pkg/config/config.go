package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/nikogura/resume-render/pkg/fetch"
)

// Dir is the per-user directory holding config and preferences.
const Dir = ".resume-render"

// Config represents the application configuration.
type Config struct {
	BaseDocument    string       `json:"base_document"              env:"RESUME_BASE_DOCUMENT"`
	OverlayPattern  string       `json:"overlay_pattern"            env:"RESUME_OVERLAY_PATTERN"`
	Shell           string       `json:"shell,omitempty"            env:"RESUME_SHELL"`
	RichText        bool         `json:"rich_text"                  env:"RESUME_RICH_TEXT"`
	PreferencesPath string       `json:"preferences_path,omitempty" env:"RESUME_PREFERENCES_PATH"`
	OutputDir       string       `json:"output_dir"                 env:"RESUME_OUTPUT_DIR"`
	Server          ServerConfig `json:"server"                     envPrefix:"RESUME_SERVER_"`
	Log             LogConfig    `json:"log"                        envPrefix:"RESUME_LOG_"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr    string `json:"addr"               env:"ADDR"`
	DataDir string `json:"data_dir,omitempty" env:"DATA_DIR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level" env:"LEVEL"`
}

// DefaultPath returns ~/.resume-render/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, Dir, "config.json")
	return path, err
}

// Default returns the built in configuration.
func Default() (cfg Config) {
	cfg = Config{
		BaseDocument:   "./data/resume.json",
		OverlayPattern: "./data/i18n/" + fetch.LocalePlaceholder + ".json",
		OutputDir:      "./public",
		Server: ServerConfig{
			Addr:    ":8080",
			DataDir: "./data",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.PreferencesPath = filepath.Join(homeDir, Dir, "preferences.json")
	}
	return cfg
}

// Load reads configuration from file with environment variable overrides.
// An empty configPath uses DefaultPath, and a missing default file yields
// the built in defaults. A missing explicit file is an error.
func Load(configPath string) (cfg Config, err error) {
	cfg = Default()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-render init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = env.Parse(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to read environment overrides")
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.BaseDocument == "" {
		err = errors.New("base_document is required in config")
		return err
	}

	if c.OverlayPattern == "" {
		err = errors.New("overlay_pattern is required in config")
		return err
	}

	if !strings.Contains(c.OverlayPattern, fetch.LocalePlaceholder) {
		err = errors.Errorf("overlay_pattern must contain %s: %s", fetch.LocalePlaceholder, c.OverlayPattern)
		return err
	}

	if c.Shell != "" {
		_, err = os.Stat(c.Shell)
		if os.IsNotExist(err) {
			err = errors.Errorf("shell file not found: %s", c.Shell)
			return err
		}
		err = nil
	}

	_, err = ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}

	if c.OutputDir == "" {
		c.OutputDir = "./public"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	return err
}

// ParseLevel maps a level name to a slog level. An empty name is info.
func ParseLevel(name string) (level slog.Level, err error) {
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		err = errors.Errorf("unknown log level: %s", name)
	}
	return level, err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	var data []byte
	data, err = json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
