package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/interviewq/internal/llm"
)

// Temperature is the sampling temperature for question generation.
const Temperature = 0.7

// Completer sends one prompt to the model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMCompleter implements Completer over an llm.Provider.
type LLMCompleter struct {
	provider llm.Provider
}

// NewCompleter wraps provider. The provider decides the model and where
// its API key comes from.
func NewCompleter(provider llm.Provider) *LLMCompleter {
	return &LLMCompleter{provider: provider}
}

// Complete returns the first choice's text, or "" when the model returned
// no choices.
func (c *LLMCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeInterviewQuestions)

	resp, err := c.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature: Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Configured reports whether the provider has credentials, for providers
// that can tell. Others are assumed configured.
func (c *LLMCompleter) Configured() bool {
	if p, ok := c.provider.(interface{ Configured() bool }); ok {
		return p.Configured()
	}
	return true
}

// IsUpstreamRateLimited reports whether a completion failure means the
// provider is throttling us.
func IsUpstreamRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	// Some transports only carry the status in the message text.
	return strings.Contains(err.Error(), "429")
}
