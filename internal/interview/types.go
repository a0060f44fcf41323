// Package interview turns a role, level and topic into a list of interview
// questions produced by a chat-completion model.
package interview

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Levels are the seniority labels offered to callers. Validation accepts
// any non-empty level.
var Levels = []string{"Junior", "Mid", "Senior"}

// CountChoices are the question counts offered to callers.
var CountChoices = []int{3, 5, 10}

const (
	DefaultCount = 5
	MinCount     = 1
	MaxCount     = 10
)

// Difficulty is the model's self-assessed difficulty for a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// GenerationRequest is the inbound request exactly as the caller sent it.
type GenerationRequest struct {
	Role  string `json:"role"`
	Level string `json:"level"`
	Topic string `json:"topic,omitempty"`
	Count Count  `json:"count,omitzero"`
}

// requestBody is the HTTP form of a GenerationRequest. Its text fields keep
// their raw JSON so a stray number or boolean reaches validation instead of
// failing the decode.
type requestBody struct {
	Role  json.RawMessage `json:"role"`
	Level json.RawMessage `json:"level"`
	Topic json.RawMessage `json:"topic"`
	Count Count           `json:"count"`
}

func (b requestBody) request() GenerationRequest {
	return GenerationRequest{
		Role:  scalarText(b.Role),
		Level: scalarText(b.Level),
		Topic: scalarText(b.Topic),
		Count: b.Count,
	}
}

// scalarText renders a JSON scalar as text. Null, false, zero, objects and
// arrays read as empty.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return ""
		}
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}

// ValidatedRequest is a GenerationRequest with trimmed strings and a count
// in [MinCount, MaxCount].
type ValidatedRequest struct {
	Role  string
	Level string
	Topic string
	Count int
}

// Count is the caller-supplied question count. It holds the raw JSON value
// so a number, a numeric string, or nothing at all can be resolved later.
type Count struct {
	raw json.RawMessage
}

// CountOf returns a Count holding n.
func CountOf(n int) Count {
	return Count{raw: json.RawMessage(strconv.Itoa(n))}
}

func (c *Count) UnmarshalJSON(b []byte) error {
	c.raw = append(c.raw[:0], b...)
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("null"), nil
	}
	return c.raw, nil
}

// IsZero reports whether no count was supplied.
func (c Count) IsZero() bool {
	return len(c.raw) == 0
}

// Resolve returns the effective question count. Absent, zero and
// unparseable values give DefaultCount; anything else is clamped to
// [MinCount, MaxCount] and truncated toward zero.
func (c Count) Resolve() int {
	f, ok := c.number()
	if !ok || f == 0 || math.IsNaN(f) {
		return DefaultCount
	}
	f = math.Min(math.Max(f, MinCount), MaxCount)
	return int(math.Trunc(f))
}

func (c Count) number() (float64, bool) {
	raw := bytes.TrimSpace(c.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// QuestionItem is one element of the model's output array. The element is
// kept verbatim; the accessors read its fields leniently.
type QuestionItem struct {
	raw json.RawMessage

	Question   string
	Answer     string
	Difficulty Difficulty
	FollowUp   string
}

type questionFields struct {
	Question   any `json:"question"`
	Answer     any `json:"answer"`
	Difficulty any `json:"difficulty"`
	FollowUp   any `json:"followUp"`
}

// UnmarshalJSON accepts any JSON value. Missing fields, and fields holding
// objects or arrays, are left empty.
func (q *QuestionItem) UnmarshalJSON(b []byte) error {
	q.raw = append(json.RawMessage(nil), b...)

	var f questionFields
	if err := json.Unmarshal(b, &f); err != nil {
		// Not an object. Keep the raw element and move on.
		return nil
	}
	q.Question = asString(f.Question)
	q.Answer = asString(f.Answer)
	q.Difficulty = Difficulty(asString(f.Difficulty))
	q.FollowUp = asString(f.FollowUp)
	return nil
}

// MarshalJSON writes the element exactly as the model produced it.
func (q QuestionItem) MarshalJSON() ([]byte, error) {
	if len(q.raw) > 0 {
		return q.raw, nil
	}
	return json.Marshal(map[string]string{
		"question":   q.Question,
		"answer":     q.Answer,
		"difficulty": string(q.Difficulty),
		"followUp":   q.FollowUp,
	})
}

// Raw returns the element's original JSON text.
func (q QuestionItem) Raw() json.RawMessage {
	return q.raw
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
