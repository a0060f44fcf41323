package llm

import (
	"fmt"
	"os"
)

// Config holds all LLM provider configuration. API keys are deliberately
// absent: they are read from the environment on every call, named by the
// selected provider's APIKeyEnv.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "openai", "openrouter", "anthropic", "gemini", "mock"
	Provider string

	Groq       OpenAIConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
}

// OpenAIConfig configures any OpenAI-compatible chat completion API.
type OpenAIConfig struct {
	APIKey    string
	APIKeyEnv string
	Model     string
	BaseURL   string // Optional. Overrides the SDK default endpoint.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey    string
	APIKeyEnv string
	Model     string // Default: "claude-haiku"
	BaseURL   string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey    string
	APIKeyEnv string
	Model     string // Default: "gemini-flash"
}

const (
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: OpenAIConfig{
			APIKeyEnv: "GROQ_API_KEY",
			Model:     "llama-3.3-70b-versatile",
			BaseURL:   defaultGroqBaseURL,
		},
		OpenAI: OpenAIConfig{
			APIKeyEnv: "OPENAI_API_KEY",
			Model:     "gpt-4o-mini",
		},
		OpenRouter: OpenAIConfig{
			APIKeyEnv: "OPENROUTER_API_KEY",
			Model:     "meta-llama/llama-3.3-70b-instruct",
			BaseURL:   defaultOpenRouterBaseURL,
		},
		Anthropic: AnthropicConfig{
			APIKeyEnv: "ANTHROPIC_API_KEY",
			Model:     "claude-haiku",
		},
		Gemini: GeminiConfig{
			APIKeyEnv: "GEMINI_API_KEY",
			Model:     "gemini-flash",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. The model, base URL and key variable
// overrides apply to the selected provider only.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("INTERVIEWQ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if m := os.Getenv("INTERVIEWQ_LLM_MODEL"); m != "" {
		cfg.SetModel(m)
	}
	if u := os.Getenv("INTERVIEWQ_LLM_BASE_URL"); u != "" {
		cfg.SetBaseURL(u)
	}
	if k := os.Getenv("INTERVIEWQ_LLM_API_KEY_ENV"); k != "" {
		cfg.SetAPIKeyEnv(k)
	}

	return cfg
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case "groq":
		c.Groq.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	case "anthropic":
		c.Anthropic.Model = model
	case "gemini":
		c.Gemini.Model = model
	}
}

// SetBaseURL overrides the endpoint of the selected provider. Gemini has
// no base URL override.
func (c *Config) SetBaseURL(u string) {
	switch c.Provider {
	case "groq":
		c.Groq.BaseURL = u
	case "openai":
		c.OpenAI.BaseURL = u
	case "openrouter":
		c.OpenRouter.BaseURL = u
	case "anthropic":
		c.Anthropic.BaseURL = u
	}
}

// SetAPIKeyEnv changes the environment variable the selected provider
// reads its key from.
func (c *Config) SetAPIKeyEnv(name string) {
	switch c.Provider {
	case "groq":
		c.Groq.APIKeyEnv = name
	case "openai":
		c.OpenAI.APIKeyEnv = name
	case "openrouter":
		c.OpenRouter.APIKeyEnv = name
	case "anthropic":
		c.Anthropic.APIKeyEnv = name
	case "gemini":
		c.Gemini.APIKeyEnv = name
	}
}

// KeyEnv returns the environment variable holding the selected provider's
// API key. Empty for the mock provider.
func (c Config) KeyEnv() string {
	switch c.Provider {
	case "groq":
		return c.Groq.APIKeyEnv
	case "openai":
		return c.OpenAI.APIKeyEnv
	case "openrouter":
		return c.OpenRouter.APIKeyEnv
	case "anthropic":
		return c.Anthropic.APIKeyEnv
	case "gemini":
		return c.Gemini.APIKeyEnv
	}
	return ""
}

// Model returns the configured model name of the selected provider,
// before friendly-name resolution.
func (c Config) Model() string {
	switch c.Provider {
	case "groq":
		return c.Groq.Model
	case "openai":
		return c.OpenAI.Model
	case "openrouter":
		return c.OpenRouter.Model
	case "anthropic":
		return c.Anthropic.Model
	case "gemini":
		return c.Gemini.Model
	case "mock":
		return "mock"
	}
	return ""
}

// Validate checks that the provider is known and names a key variable.
// A missing key value is not a configuration error: it is reported per
// call as ErrNotConfigured.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq", "openai", "openrouter", "anthropic", "gemini":
		if c.KeyEnv() == "" {
			return fmt.Errorf("no API key variable configured for the %s provider", c.Provider)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
