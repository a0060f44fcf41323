package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "interview-questions", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nGenerate 5"},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "interview-questions", LatencyMs: 100, Success: false, ErrorMessage: "status code: 429"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "smoke-test", InputTokens: 10, OutputTokens: 20, LatencyMs: 300, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Model != "gpt-4o-mini" {
		t.Errorf("expected newest first, got %q", all[0].Model)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "interview-questions"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ErrorMessage != "status code: 429" || limited[0].Success {
		t.Fatalf("unexpected limited result: %+v", limited)
	}

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil {
		t.Fatal("expected event")
	}
	if !first.Success || first.RequestBody != "[user]\nGenerate 5" {
		t.Errorf("unexpected event: %+v", first)
	}
	if !first.Timestamp.Equal(base.Add(time.Second)) {
		t.Errorf("timestamp = %v, want %v", first.Timestamp, base.Add(time.Second))
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown id")
	}
}

func TestLLMEvents_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "interview-questions", InputTokens: 100, OutputTokens: 300, LatencyMs: 1000, Success: true},
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Purpose: "interview-questions", InputTokens: 50, OutputTokens: 100, LatencyMs: 500, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "smoke-test", InputTokens: 1, OutputTokens: 2, LatencyMs: 10, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	iq := byPurpose[0]
	if iq.Purpose != "interview-questions" || iq.Calls != 2 || iq.InputTokens != 150 || iq.OutputTokens != 400 || iq.AvgLatencyMs != 750 {
		t.Errorf("unexpected interview-questions usage: %+v", iq)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gpt-4o-mini" || byModel[1].Calls != 2 {
		t.Errorf("unexpected usage by model: %+v", byModel)
	}
}

func TestRateWindows_SetWindowExpire(t *testing.T) {
	s := openTestStore(t)
	repo := s.RateWindows()
	ctx := context.Background()

	if err := repo.SetWindow(ctx, "10.0.0.1", []int64{3000, 1000, 2000}); err != nil {
		t.Fatalf("set window: %v", err)
	}
	if err := repo.SetWindow(ctx, "unknown", []int64{5000}); err != nil {
		t.Fatalf("set window: %v", err)
	}

	got, err := repo.Window(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	want := []int64{1000, 2000, 3000}
	if len(got) != len(want) {
		t.Fatalf("window = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("window = %v, want %v", got, want)
		}
	}

	// Replacing shrinks rather than appends.
	if err := repo.SetWindow(ctx, "10.0.0.1", []int64{3000}); err != nil {
		t.Fatalf("set window: %v", err)
	}
	got, _ = repo.Window(ctx, "10.0.0.1")
	if len(got) != 1 || got[0] != 3000 {
		t.Fatalf("window after replace = %v", got)
	}

	n, err := repo.Expire(ctx, 3000)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if n != 1 {
		t.Fatalf("expired %d rows, want 1", n)
	}
	clients, err := repo.Clients(ctx)
	if err != nil {
		t.Fatalf("clients: %v", err)
	}
	if clients != 1 {
		t.Fatalf("clients = %d, want 1", clients)
	}

	if err := repo.SetWindow(ctx, "unknown", nil); err != nil {
		t.Fatalf("clear window: %v", err)
	}
	clients, _ = repo.Clients(ctx)
	if clients != 0 {
		t.Fatalf("clients after clear = %d, want 0", clients)
	}
}
