package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "PERDIEM_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "PERDIEM_AGENT_BASE_URL"
	EnvAgentToken        = "PERDIEM_AGENT_TOKEN"
	EnvAgentModelName    = "PERDIEM_AGENT_MODEL_NAME"

	// Honored for parity with the Ollama tooling the audit pipeline
	// is typically deployed against.
	EnvOllamaModel = "OLLAMA_MODEL"

	defaultProvider = "ollama"
	defaultBaseURL  = "http://localhost:11434"
	defaultModel    = "llama3.2"
)

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: defaults, environment variable overrides, and validation.
// The default agent targets a local Ollama instance running llama3.2.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults

	if c.Name == "" {
		c.Name = "perdiem-audit"
	}
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Name == "" {
		c.Provider.Name = defaultProvider
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = defaultBaseURL
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if c.Model.Name == "" {
		c.Model.Name = defaultModel
	}
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}

	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvOllamaModel); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv(EnvAgentToken); v != "" {
		c.Provider.Options["token"] = v
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil || c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil || c.Model.Name == "" {
		return fmt.Errorf("model name required")
	}
	return nil
}
