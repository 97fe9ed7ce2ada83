package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds application configuration.
type Config struct {
	Org                string   `json:"org"`
	Repos              []string `json:"repos"`
	Reviewer           string   `json:"reviewer,omitempty"` // empty = resolve from token
	RepoConcurrency    int      `json:"repoConcurrency"`
	PRConcurrency      int      `json:"prConcurrency"`
	NewWindowDays      int      `json:"newWindowDays"`
	IgnoredCommenters  []string `json:"ignoredCommenters,omitempty"`
	RepoStripPrefix    string   `json:"repoStripPrefix,omitempty"` // trimmed off repo names for display
	FilesWarnThreshold int      `json:"filesWarnThreshold"`
	LogLevel           string   `json:"logLevel"`
}

// Defaults
const (
	DefaultRepoConcurrency    = 3
	DefaultPRConcurrency      = 4
	DefaultNewWindowDays      = 2
	DefaultFilesWarnThreshold = 15
	DefaultLogLevel           = "info"
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "prdash")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "prdash")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "prdash")
		}
		return filepath.Join(home, ".config", "prdash")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "prdash")
		}
		return filepath.Join(home, ".config", "prdash")
	}
}

// Load reads the config file, returning defaults for missing fields.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(DefaultConfigDir(), "config.json"))
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	tmpPath := configPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config: %w", err)
	}

	return nil
}

// Token returns the GitHub token from the environment. Session-scoped;
// never written into the config file or the durable store.
func Token() string {
	return os.Getenv("GITHUB_TOKEN")
}

// StatePath returns the path of the durable key-value store file.
func StatePath() string {
	return filepath.Join(DefaultConfigDir(), "state.json")
}

// LogPath returns the path of the rotated log file.
func LogPath() string {
	return filepath.Join(DefaultConfigDir(), "prdash.log")
}

// NewWindow returns the recency window as a time.Duration.
func (c *Config) NewWindow() time.Duration {
	return time.Duration(c.NewWindowDays) * 24 * time.Hour
}

func defaults() *Config {
	return &Config{
		RepoConcurrency:    DefaultRepoConcurrency,
		PRConcurrency:      DefaultPRConcurrency,
		NewWindowDays:      DefaultNewWindowDays,
		FilesWarnThreshold: DefaultFilesWarnThreshold,
		LogLevel:           DefaultLogLevel,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.RepoConcurrency == 0 {
		cfg.RepoConcurrency = DefaultRepoConcurrency
	}
	if cfg.PRConcurrency == 0 {
		cfg.PRConcurrency = DefaultPRConcurrency
	}
	if cfg.NewWindowDays == 0 {
		cfg.NewWindowDays = DefaultNewWindowDays
	}
	if cfg.FilesWarnThreshold == 0 {
		cfg.FilesWarnThreshold = DefaultFilesWarnThreshold
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}
