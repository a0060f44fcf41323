package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/interviewq/internal/llm"
)

var (
	jsonFence = regexp.MustCompile("```json\n?")
	bareFence = regexp.MustCompile("```\n?")
)

// Sanitize strips markdown code fences the model may wrap its output in.
func Sanitize(text string) string {
	text = jsonFence.ReplaceAllString(text, "")
	text = bareFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ParseQuestions sanitizes text and decodes it as a JSON array. Elements
// are not shape-checked.
func ParseQuestions(text string) ([]QuestionItem, error) {
	return parse(text, false)
}

// ParseQuestionsStrict is ParseQuestions followed by a check of every
// element against QuestionListSchema.
func ParseQuestionsStrict(text string) ([]QuestionItem, error) {
	return parse(text, true)
}

func parse(text string, strict bool) ([]QuestionItem, error) {
	cleaned := Sanitize(text)

	var items []QuestionItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("parse model output: expected a JSON array, got %s", typeErr.Value)
		}
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	if items == nil {
		// A bare "null" decodes without error.
		return nil, fmt.Errorf("parse model output: expected a JSON array, got %s", truncate(cleaned, 20))
	}

	if strict {
		if err := llm.ValidateContent(QuestionListSchema, json.RawMessage(cleaned)); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
