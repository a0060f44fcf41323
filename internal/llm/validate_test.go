package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-card",
		Description: "A flash card",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string"},
					"weight": map[string]any{"type": "integer", "minimum": 0},
					"level":  map[string]any{"type": "string", "enum": []any{"Easy", "Medium", "Hard"}},
				},
				"required": []any{"prompt", "level"},
			},
		},
	}
}

func TestValidateContent_Valid(t *testing.T) {
	raw := json.RawMessage(`[{"prompt":"Explain goroutines","weight":2,"level":"Easy"}]`)
	if err := ValidateContent(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateContent_EmptyArray(t *testing.T) {
	if err := ValidateContent(testSchema(), json.RawMessage(`[]`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateContent_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`[{"prompt":"Explain channels"}]`)
	err := ValidateContent(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateContent_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`[{"prompt":"Explain maps","level":"Trivial"}]`)
	if err := ValidateContent(testSchema(), raw); err == nil {
		t.Fatal("expected error for value outside enum")
	}
}

func TestValidateContent_WrongTopLevelType(t *testing.T) {
	raw := json.RawMessage(`{"prompt":"Explain maps","level":"Easy"}`)
	if err := ValidateContent(testSchema(), raw); err == nil {
		t.Fatal("expected error for object where array is required")
	}
}

func TestValidateContent_MalformedJSON(t *testing.T) {
	err := ValidateContent(testSchema(), json.RawMessage(`[{"prompt":`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
	if string(inv.Content) != `[{"prompt":` {
		t.Fatalf("expected raw content to be preserved, got %s", inv.Content)
	}
}

func TestValidateContent_NilSchema(t *testing.T) {
	if err := ValidateContent(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
