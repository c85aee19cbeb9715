package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.LogLevel)
	}
	if cfg.Backend.HealthTimeout.Std() != 2*time.Second {
		t.Errorf("expected 2s health timeout, got %v", cfg.Backend.HealthTimeout.Std())
	}
	if cfg.Settlement.Schedule != "0 18 * * *" {
		t.Errorf("unexpected schedule %q", cfg.Settlement.Schedule)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.DataDir = "/var/lib/marina"
	cfg.Backend.URL = "http://core.local:8080"
	cfg.Backend.HealthTimeout = Duration(500 * time.Millisecond)
	cfg.Chat.UseThinking = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if want := `"health_timeout": "500ms"`; !strings.Contains(string(data), want) {
		t.Errorf("expected %s in saved config:\n%s", want, data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "/var/lib/marina" || loaded.Backend.URL != "http://core.local:8080" {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
	if loaded.Backend.HealthTimeout.Std() != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", loaded.Backend.HealthTimeout.Std())
	}
	if !loaded.Chat.UseThinking {
		t.Error("expected use_thinking to survive the round trip")
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log_level":"debug","chat":{"model":"file-model"}}`), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MARINA_LOG_LEVEL", "error")
	t.Setenv("MARINA_CHAT_API_KEY", "secret")
	t.Setenv("MARINA_BACKEND_HEALTH_TIMEOUT", "3s")
	t.Setenv("MARINA_SECURITY_CCTV_DELAY", "0s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("env should win over file, got %q", cfg.LogLevel)
	}
	if cfg.Chat.Model != "file-model" {
		t.Errorf("unset env should keep the file value, got %q", cfg.Chat.Model)
	}
	if cfg.Chat.APIKey != "secret" {
		t.Errorf("expected API key from env, got %q", cfg.Chat.APIKey)
	}
	if cfg.Backend.HealthTimeout.Std() != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Backend.HealthTimeout.Std())
	}
	if cfg.Security.CCTVDelay.Std() != 0 {
		t.Errorf("expected zero CCTV delay, got %v", cfg.Security.CCTVDelay.Std())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "malformed json", file: `{"log_level":`},
		{name: "bad duration in file", file: `{"backend":{"health_timeout":"soon"}}`},
		{name: "bad duration in env", file: `{}`, env: map[string]string{"MARINA_BACKEND_HEALTH_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.file), 0600); err != nil {
				t.Fatal(err)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
