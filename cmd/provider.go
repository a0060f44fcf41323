package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/interviewq/internal/llm"
	"github.com/abhisek/interviewq/internal/store"
)

// newEnvProvider builds the completion provider from INTERVIEWQ_LLM_*
// settings. The API key itself is looked up on each call, so a missing
// key is reported per request rather than here.
func newEnvProvider(repo store.EventRepo, logger *slog.Logger) (*llm.EnvProvider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LLM config: %w", err)
	}
	return llm.NewEnvProvider(cfg, repo, logger), nil
}
