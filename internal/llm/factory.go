package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/abhisek/interviewq/internal/store"
)

// NewProvider creates the concrete Provider selected by cfg using apiKey.
// It performs no network I/O.
func NewProvider(ctx context.Context, cfg Config, apiKey string) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch cfg.Provider {
	case "groq":
		c := cfg.Groq
		c.APIKey = apiKey
		p, err = NewGroqProvider(c)
	case "openai":
		c := cfg.OpenAI
		c.APIKey = apiKey
		p, err = NewOpenAIProvider(c)
	case "openrouter":
		c := cfg.OpenRouter
		c.APIKey = apiKey
		p, err = NewOpenRouterProvider(c)
	case "anthropic":
		c := cfg.Anthropic
		c.APIKey = apiKey
		p, err = NewAnthropicProvider(c)
	case "gemini":
		c := cfg.Gemini
		c.APIKey = apiKey
		p, err = NewGeminiProvider(ctx, c)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return p, nil
}

// EnvProvider resolves its API key from the environment on every call.
// A missing key fails with ErrNotConfigured before any client is built,
// so absence is a per-request error rather than a startup failure. The
// concrete provider is cached until the key changes.
type EnvProvider struct {
	cfg       Config
	eventRepo store.EventRepo
	logger    *slog.Logger

	// Lookup reads an environment variable. Defaults to os.Getenv.
	Lookup func(string) string

	mu     sync.Mutex
	key    string
	cached Provider
}

// NewEnvProvider creates an EnvProvider. eventRepo may be nil, in which
// case calls are not recorded in the audit log.
func NewEnvProvider(cfg Config, eventRepo store.EventRepo, logger *slog.Logger) *EnvProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnvProvider{
		cfg:       cfg,
		eventRepo: eventRepo,
		logger:    logger,
		Lookup:    os.Getenv,
	}
}

func (p *EnvProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	inner, err := p.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return inner.Generate(ctx, req)
}

func (p *EnvProvider) ModelID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil {
		return p.cached.ModelID()
	}
	return p.cfg.Model()
}

// Configured reports whether the provider's API key is currently set.
func (p *EnvProvider) Configured() bool {
	return p.cfg.Provider == "mock" || p.apiKey() != ""
}

func (p *EnvProvider) apiKey() string {
	name := p.cfg.KeyEnv()
	if name == "" {
		return ""
	}
	return strings.TrimSpace(p.Lookup(name))
}

func (p *EnvProvider) resolve(ctx context.Context) (Provider, error) {
	key := p.apiKey()
	if key == "" && p.cfg.Provider != "mock" {
		return nil, ErrNotConfigured
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && p.key == key {
		return p.cached, nil
	}

	base, err := NewProvider(ctx, p.cfg, key)
	if err != nil {
		return nil, err
	}

	if p.eventRepo != nil {
		base = WithLogging(base, p.cfg.Provider, p.eventRepo, p.logger)
	}

	p.key = key
	p.cached = base
	return base, nil
}
