package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewq/internal/store"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	assert.True(t, newLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, newLogger("").Enabled(ctx, slog.LevelDebug))
	assert.True(t, newLogger("").Enabled(ctx, slog.LevelInfo))
	assert.False(t, newLogger("WARN").Enabled(ctx, slog.LevelInfo))
	assert.False(t, newLogger("error").Enabled(ctx, slog.LevelWarn))
}

func TestLoadEnvFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTERVIEWQ_TEST_PRESET", "from-env")

	require.NoError(t, loadEnvFiles(), "missing files are not an error")

	env := "INTERVIEWQ_TEST_FROM_FILE=hello\nINTERVIEWQ_TEST_PRESET=from-file\n"
	require.NoError(t, os.WriteFile(".env", []byte(env), 0o600))
	t.Cleanup(func() { os.Unsetenv("INTERVIEWQ_TEST_FROM_FILE") })

	require.NoError(t, loadEnvFiles())
	assert.Equal(t, "hello", os.Getenv("INTERVIEWQ_TEST_FROM_FILE"))
	assert.Equal(t, "from-env", os.Getenv("INTERVIEWQ_TEST_PRESET"), "existing variables win")
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "interviewq")
}

func TestLLMListAndStats(t *testing.T) {
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	out, err := runRoot(t, "llm", "list", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(context.Background(), store.LLMRequestEventData{
		Provider:     "groq",
		Model:        "llama-3.3-70b-versatile",
		Purpose:      "interview-questions",
		InputTokens:  1200,
		OutputTokens: 3400,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  "[user]\nGenerate 3 interview questions",
	}))
	require.NoError(t, s.Close())

	out, err = runRoot(t, "llm", "list", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "llama-3.3-70b-versatile")
	assert.Contains(t, out, "1,200")

	out, err = runRoot(t, "llm", "view", "1", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Generate 3 interview questions")

	out, err = runRoot(t, "llm", "stats", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "interview-questions")
	assert.Contains(t, out, "4,600")
}
