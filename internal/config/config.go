// Package config provides layered configuration for the perdiem service:
// TOML base file, environment overlay file, environment variables, and
// defaults, applied in that order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/mbaumgart/perdiem/pkg/backend"
	"github.com/mbaumgart/perdiem/pkg/database"
	"github.com/mbaumgart/perdiem/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPerdiemEnv             = "PERDIEM_ENV"
	EnvPerdiemShutdownTimeout = "PERDIEM_SHUTDOWN_TIMEOUT"
	EnvPerdiemVersion         = "PERDIEM_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PERDIEM_DB_HOST",
	Port:            "PERDIEM_DB_PORT",
	Name:            "PERDIEM_DB_NAME",
	User:            "PERDIEM_DB_USER",
	Password:        "PERDIEM_DB_PASSWORD",
	SSLMode:         "PERDIEM_DB_SSL_MODE",
	MaxOpenConns:    "PERDIEM_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PERDIEM_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PERDIEM_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PERDIEM_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PERDIEM_STORAGE_CONTAINER_NAME",
	ConnectionString: "PERDIEM_STORAGE_CONNECTION_STRING",
}

var backendEnv = &backend.Env{
	BaseURL:  "PERDIEM_BACKEND_BASE_URL",
	Username: "API_USERNAME",
	Password: "API_PASSWORD",
	Timeout:  "PERDIEM_BACKEND_TIMEOUT",
}

// Config is the root configuration for the perdiem service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	Backend         backend.Config       `toml:"backend"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	API             APIConfig            `toml:"api"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the PERDIEM_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPerdiemEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadAudit reads configuration for the standalone audit CLI. Only the
// backend and agent sections are finalized; the CLI has no database,
// storage, or HTTP surface.
func LoadAudit() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Backend.Finalize(backendEnv); err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	if err := FinalizeAgent(&cfg.Agent); err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Backend.Merge(&overlay.Backend)
	c.Agent.Merge(&overlay.Agent)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Backend.Finalize(backendEnv); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPerdiemShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPerdiemVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPerdiemEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
