package interview

import (
	"fmt"
	"strings"
)

// responseFormat is the output contract given to the model. The field
// names and difficulty labels must match QuestionItem and the consumer.
const responseFormat = `Return a JSON array with this exact format (no markdown, no code fences, just raw JSON):
[
  {
    "question": "The interview question",
    "answer": "A concise but thorough sample answer (2-4 sentences)",
    "difficulty": "Easy" | "Medium" | "Hard",
    "followUp": "A follow-up question the interviewer could ask"
  }
]`

// BuildPrompt renders the single user message sent to the model.
func BuildPrompt(req ValidatedRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d interview questions for a %s-level %s position.", req.Count, req.Level, req.Role)
	if req.Topic != "" {
		fmt.Fprintf(&b, " Focus on the topic: %s.", req.Topic)
	}

	b.WriteString("\n\n")
	b.WriteString(responseFormat)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Make the questions practical and realistic. Vary the difficulty levels. "+
		"Each question should be specific enough to test real knowledge, not generic. "+
		"Answers should demonstrate what a strong %s-level candidate would say.", req.Level)

	return b.String()
}
