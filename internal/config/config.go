// Package config manages the user-level gitpilot configuration file and the
// environment overrides layered on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by gitpilot
const (
	EnvModel       = "GITPILOT_MODEL"
	EnvConfigHome  = "XDG_CONFIG_HOME"
	EnvGitHubToken = "GITHUB_TOKEN"
)

// Config keys accepted by Get and Set
const (
	KeyModel         = "model"
	KeyGitHubToken   = "github-token"
	KeyCopilotLogDir = "copilot-log-dir"
	KeyHistory       = "history"
)

// ErrUnknownKey is returned for config keys gitpilot does not know
var ErrUnknownKey = errors.New("unknown config key")

// Config is the user configuration. Unset fields fall back to defaults.
type Config struct {
	Model         *string `yaml:"model,omitempty"`
	GitHubToken   *string `yaml:"github_token,omitempty"`
	CopilotLogDir *string `yaml:"copilot_log_dir,omitempty"`
	History       *bool   `yaml:"history,omitempty"`
}

// DefaultPath returns $XDG_CONFIG_HOME/gitpilot/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	base := os.Getenv(EnvConfigHome)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gitpilot", "config.yaml"), nil
}

// LoadDotEnv loads a .env file from dir into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the config at path. A missing file yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, readable only by the owner since it may
// hold a token.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// EffectiveModel returns the model to request: GITPILOT_MODEL, then the
// configured model, then "" meaning the tool's default.
func (c *Config) EffectiveModel() string {
	if model := strings.TrimSpace(os.Getenv(EnvModel)); model != "" {
		return model
	}
	return deref(c.Model)
}

// Token returns the configured GitHub token
func (c *Config) Token() string {
	return deref(c.GitHubToken)
}

// LogDir returns the configured copilot log directory
func (c *Config) LogDir() string {
	return deref(c.CopilotLogDir)
}

// HistoryEnabled reports whether generation runs are recorded. Defaults to true.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// Keys lists the keys accepted by Get and Set
func Keys() []string {
	keys := []string{KeyModel, KeyGitHubToken, KeyCopilotLogDir, KeyHistory}
	sort.Strings(keys)
	return keys
}

// Get returns the stored value for key, or "" when unset
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyModel:
		return deref(c.Model), nil
	case KeyGitHubToken:
		return deref(c.GitHubToken), nil
	case KeyCopilotLogDir:
		return deref(c.CopilotLogDir), nil
	case KeyHistory:
		return strconv.FormatBool(c.HistoryEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
}

// Set stores value under key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyModel:
		c.Model = optional(value)
	case KeyGitHubToken:
		c.GitHubToken = optional(value)
	case KeyCopilotLogDir:
		c.CopilotLogDir = optional(value)
	case KeyHistory:
		if value == "" {
			c.History = nil
			return nil
		}
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("history must be true or false, got %q", value)
		}
		c.History = &enabled
	default:
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
