// Package config loads and writes the codex client configuration.
// Resolution order: explicit path, project-local .codex/config.yaml, then
// ~/.config/codex/config.yaml. Missing files are not an error; defaults
// apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ProjectConfigPath is the project-local config location.
const ProjectConfigPath = ".codex/config.yaml"

// Config is the full client configuration.
type Config struct {
	// BaseURL is the backend REST endpoint.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// AuthToken is the bearer token attached to backend requests.
	AuthToken string `mapstructure:"auth_token" yaml:"auth_token"`
	// DefaultLanguage is the language selected when a problem opens.
	DefaultLanguage string `mapstructure:"default_language" yaml:"default_language"`
	// DraftSaveInterval is the debounce quiet window for editor keystrokes.
	DraftSaveInterval time.Duration `mapstructure:"draft_save_interval" yaml:"draft_save_interval"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// DataDir overrides where solved-cache and goal blobs are stored.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:           "http://localhost:3000",
		DefaultLanguage:   "cpp",
		DraftSaveInterval: time.Second,
		LogLevel:          "info",
	}
}

// Load reads configuration from path, or from the standard locations when
// path is empty. Returns the config and the path actually used ("" when no
// file was found and defaults apply).
func Load(path string) (Config, string, error) {
	resolved := resolvePath(path)
	cfg := Default()
	if resolved == "" {
		return cfg, "", nil
	}

	v := viper.New()
	v.SetConfigFile(resolved)
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("default_language", cfg.DefaultLanguage)
	v.SetDefault("draft_save_interval", cfg.DraftSaveInterval)
	v.SetDefault("log_level", cfg.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		return cfg, resolved, fmt.Errorf("reading config %s: %w", resolved, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, resolved, fmt.Errorf("parsing config %s: %w", resolved, err)
	}
	if cfg.DraftSaveInterval <= 0 {
		cfg.DraftSaveInterval = time.Second
	}
	return cfg, resolved, nil
}

// WriteDefaultConfig creates a config file at path with default settings.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	return os.WriteFile(path, data, 0o640)
}

// resolvePath picks the config file to read.
func resolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ProjectConfigPath); err == nil {
		return ProjectConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	global := filepath.Join(home, ".config", "codex", "config.yaml")
	if _, err := os.Stat(global); err == nil {
		return global
	}
	return ""
}

// DataPath returns the directory for persisted local state (solved cache,
// daily goal). Project-local configs store data alongside the config file;
// otherwise ~/.config/codex is used. An explicit DataDir always wins.
func DataPath(cfg Config, configPath string) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	if configPath != "" {
		clean := filepath.Clean(configPath)
		suffix := filepath.Join(".codex", "config.yaml")
		if strings.HasSuffix(clean, suffix) {
			return filepath.Dir(clean)
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "codex")
}

// LogPath returns the log file location, next to the data directory.
func LogPath(cfg Config, configPath string) string {
	return filepath.Join(DataPath(cfg, configPath), "codex.log")
}
