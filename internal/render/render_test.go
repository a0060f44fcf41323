package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/interviewq/internal/interview"
)

func questions(t *testing.T) []interview.QuestionItem {
	t.Helper()
	var qs []interview.QuestionItem
	err := json.Unmarshal([]byte(`[
		{"question":"What is a race condition?","answer":"Unsynchronized access.","difficulty":"Easy","followUp":"How do you detect one?"},
		{"question":"Design a rate limiter.","answer":"Sliding window per client.","difficulty":"Hard","followUp":"How would you scale it?"}
	]`), &qs)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return qs
}

func TestPlain(t *testing.T) {
	got := Plain(questions(t))
	want := "1. What is a race condition?\n" +
		"   Answer: Unsynchronized access.\n" +
		"   Difficulty: Easy\n" +
		"   Follow-up: How do you detect one?\n" +
		"\n" +
		"2. Design a rate limiter.\n" +
		"   Answer: Sliding window per client.\n" +
		"   Difficulty: Hard\n" +
		"   Follow-up: How would you scale it?"
	if got != want {
		t.Errorf("Plain() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlain_Empty(t *testing.T) {
	if got := Plain(nil); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestStyled_AnswerToggle(t *testing.T) {
	qs := questions(t)

	hidden := Styled(qs, Options{})
	if strings.Contains(hidden, "Unsynchronized access.") {
		t.Error("answers should be hidden by default")
	}
	if !strings.Contains(hidden, "What is a race condition?") || !strings.Contains(hidden, "How would you scale it?") {
		t.Error("questions and follow-ups should always render")
	}

	shown := Styled(qs, Options{ShowAnswers: true})
	if !strings.Contains(shown, "Unsynchronized access.") || !strings.Contains(shown, "Sliding window per client.") {
		t.Error("answers should render with ShowAnswers")
	}
}

func TestStyled_Empty(t *testing.T) {
	if got := Styled(nil, Options{}); !strings.Contains(got, "No questions returned.") {
		t.Errorf("unexpected output %q", got)
	}
}
