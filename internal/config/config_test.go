package config_test

import (
	"strings"
	"testing"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/mbaumgart/perdiem/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	cfg := config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.ReadTimeout != "1m" {
		t.Errorf("ReadTimeout = %q, want 1m", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != "15m" {
		t.Errorf("WriteTimeout = %q, want 15m", cfg.WriteTimeout)
	}
}

func TestServerConfigEnvOverrides(t *testing.T) {
	t.Setenv("PERDIEM_SERVER_HOST", "127.0.0.1")
	t.Setenv("PERDIEM_SERVER_PORT", "9090")

	cfg := config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", cfg.Addr())
	}
}

func TestServerConfigValidation(t *testing.T) {
	cfg := config.ServerConfig{Port: 99999}
	if err := cfg.Finalize(); err == nil || !strings.Contains(err.Error(), "invalid port") {
		t.Errorf("err = %v, want invalid port", err)
	}
}

func TestFinalizeAgentDefaults(t *testing.T) {
	cfg := gaconfig.AgentConfig{}
	if err := config.FinalizeAgent(&cfg); err != nil {
		t.Fatalf("FinalizeAgent error: %v", err)
	}

	if cfg.Name != "perdiem-audit" {
		t.Errorf("Name = %q, want perdiem-audit", cfg.Name)
	}
	if cfg.Provider == nil || cfg.Provider.Name != "ollama" {
		t.Errorf("Provider = %+v, want ollama", cfg.Provider)
	}
	if cfg.Provider.BaseURL != "http://localhost:11434" {
		t.Errorf("BaseURL = %q", cfg.Provider.BaseURL)
	}
	if cfg.Model == nil || cfg.Model.Name != "llama3.2" {
		t.Errorf("Model = %+v, want llama3.2", cfg.Model)
	}
}

func TestFinalizeAgentEnvOverrides(t *testing.T) {
	t.Run("ollama model env", func(t *testing.T) {
		t.Setenv("OLLAMA_MODEL", "mistral")

		cfg := gaconfig.AgentConfig{}
		if err := config.FinalizeAgent(&cfg); err != nil {
			t.Fatalf("FinalizeAgent error: %v", err)
		}
		if cfg.Model.Name != "mistral" {
			t.Errorf("Model.Name = %q, want mistral", cfg.Model.Name)
		}
	})

	t.Run("explicit model name wins over ollama env", func(t *testing.T) {
		t.Setenv("OLLAMA_MODEL", "mistral")
		t.Setenv("PERDIEM_AGENT_MODEL_NAME", "qwen2.5")

		cfg := gaconfig.AgentConfig{}
		if err := config.FinalizeAgent(&cfg); err != nil {
			t.Fatalf("FinalizeAgent error: %v", err)
		}
		if cfg.Model.Name != "qwen2.5" {
			t.Errorf("Model.Name = %q, want qwen2.5", cfg.Model.Name)
		}
	})

	t.Run("token stored in provider options", func(t *testing.T) {
		t.Setenv("PERDIEM_AGENT_TOKEN", "secret-token")

		cfg := gaconfig.AgentConfig{}
		if err := config.FinalizeAgent(&cfg); err != nil {
			t.Fatalf("FinalizeAgent error: %v", err)
		}
		if cfg.Provider.Options["token"] != "secret-token" {
			t.Errorf("token option = %v", cfg.Provider.Options["token"])
		}
	})
}

func TestAPIConfigDefaults(t *testing.T) {
	cfg := config.APIConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.BasePath)
	}
	if got := cfg.MaxUploadSizeBytes(); got != 50*1024*1024 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 50MB", got)
	}
	if cfg.Pagination.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.Pagination.DefaultPageSize)
	}
}

func TestAPIConfigMaxUploadSize(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{"megabytes", "10MB", 10 * 1024 * 1024},
		{"kilobytes", "512KB", 512 * 1024},
		{"invalid falls back", "lots", 50 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.APIConfig{MaxUploadSize: tt.value}
			if got := cfg.MaxUploadSizeBytes(); got != tt.want {
				t.Errorf("MaxUploadSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := config.Config{ShutdownTimeout: "30s", Version: "0.1.0"}
	base.Server = config.ServerConfig{Port: 8080}

	overlay := config.Config{Version: "0.2.0"}
	overlay.Server = config.ServerConfig{Port: 9090}

	base.Merge(&overlay)

	if base.Version != "0.2.0" {
		t.Errorf("Version = %q, want 0.2.0", base.Version)
	}
	if base.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q, want 30s (unchanged)", base.ShutdownTimeout)
	}
	if base.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", base.Server.Port)
	}
}

func TestLoadAudit(t *testing.T) {
	t.Setenv("PERDIEM_BACKEND_BASE_URL", "http://backend:8080")
	t.Setenv("API_USERNAME", "auditor")
	t.Setenv("API_PASSWORD", "secret")

	cfg, err := config.LoadAudit()
	if err != nil {
		t.Fatalf("LoadAudit error: %v", err)
	}

	if cfg.Backend.BaseURL != "http://backend:8080" {
		t.Errorf("Backend.BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != "10s" {
		t.Errorf("Backend.Timeout = %q, want 10s default", cfg.Backend.Timeout)
	}
	if cfg.Agent.Model == nil || cfg.Agent.Model.Name == "" {
		t.Error("agent model not finalized")
	}
}
