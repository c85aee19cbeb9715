// Package config loads the console configuration from ~/.marina/config.json
// with MARINA_* environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "MARINA"

// Duration is a time.Duration written as "2s" in JSON and the environment.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.Decode(s)
}

// Decode implements envconfig.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ChatConfig configures the generative chat fallback.
type ChatConfig struct {
	APIKey      string `json:"api_key,omitempty" envconfig:"API_KEY"`
	Model       string `json:"model,omitempty" envconfig:"MODEL"`
	UseSearch   bool   `json:"use_search" envconfig:"USE_SEARCH"`
	UseThinking bool   `json:"use_thinking" envconfig:"USE_THINKING"`
}

// BackendConfig points at an optional remote console core.
type BackendConfig struct {
	URL           string   `json:"url,omitempty" envconfig:"URL"`
	HealthTimeout Duration `json:"health_timeout" envconfig:"HEALTH_TIMEOUT"`
}

// SettlementConfig schedules the daily bank settlement.
type SettlementConfig struct {
	Schedule string `json:"schedule,omitempty" envconfig:"SCHEDULE"`
}

// SecurityConfig tunes the surveillance provider.
type SecurityConfig struct {
	CCTVDelay Duration `json:"cctv_delay" envconfig:"CCTV_DELAY"`
}

// OperatorConfig is the identity commands are issued under.
type OperatorConfig struct {
	ID         string `json:"id,omitempty" envconfig:"ID"`
	Name       string `json:"name,omitempty" envconfig:"NAME"`
	Role       string `json:"role,omitempty" envconfig:"ROLE"`
	VesselName string `json:"vessel,omitempty" envconfig:"VESSEL"`
}

// Config is the console configuration.
type Config struct {
	DataDir    string           `json:"data_dir,omitempty" envconfig:"DATA_DIR"`
	LogLevel   string           `json:"log_level,omitempty" envconfig:"LOG_LEVEL"`
	PolicyFile string           `json:"policy_file,omitempty" envconfig:"POLICY_FILE"`
	DocsDir    string           `json:"docs_dir,omitempty" envconfig:"DOCS_DIR"`
	Operator   OperatorConfig   `json:"operator" ignored:"true"`
	Chat       ChatConfig       `json:"chat" ignored:"true"`
	Backend    BackendConfig    `json:"backend" ignored:"true"`
	Settlement SettlementConfig `json:"settlement" ignored:"true"`
	Security   SecurityConfig   `json:"security" ignored:"true"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Operator: OperatorConfig{ID: "gm-01", Name: "General Manager", Role: "GENERAL_MANAGER"},
		Chat: ChatConfig{
			Model:       "gemini-2.5-flash",
			UseSearch:   true,
			UseThinking: false,
		},
		Backend:    BackendConfig{HealthTimeout: Duration(2 * time.Second)},
		Settlement: SettlementConfig{Schedule: "0 18 * * *"},
		Security:   SecurityConfig{CCTVDelay: Duration(800 * time.Millisecond)},
	}
}

// DefaultPath returns ~/.marina/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".marina", "config.json"), nil
}

// Load reads the config file at path (DefaultPath when empty) over the
// defaults, then applies environment overrides. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	groups := []struct {
		prefix string
		spec   any
	}{
		{EnvPrefix, cfg},
		{EnvPrefix + "_OPERATOR", &cfg.Operator},
		{EnvPrefix + "_CHAT", &cfg.Chat},
		{EnvPrefix + "_BACKEND", &cfg.Backend},
		{EnvPrefix + "_SETTLEMENT", &cfg.Settlement},
		{EnvPrefix + "_SECURITY", &cfg.Security},
	}
	for _, g := range groups {
		if err := envconfig.Process(g.prefix, g.spec); err != nil {
			return fmt.Errorf("failed to apply %s_* environment: %w", g.prefix, err)
		}
	}
	return nil
}

// Save writes cfg to path (DefaultPath when empty), creating the directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// The file may hold an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
