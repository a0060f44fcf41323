// Package render formats generated questions for the terminal.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewq/internal/interview"
	"github.com/abhisek/interviewq/internal/ui/theme"
)

// Plain returns the numbered copy-all text:
//
//	1. Question
//	   Answer: ...
//	   Difficulty: ...
//	   Follow-up: ...
//
// with a blank line between questions.
func Plain(questions []interview.QuestionItem) string {
	blocks := make([]string, len(questions))
	for i, q := range questions {
		blocks[i] = fmt.Sprintf("%d. %s\n   Answer: %s\n   Difficulty: %s\n   Follow-up: %s",
			i+1, q.Question, q.Answer, q.Difficulty, q.FollowUp)
	}
	return strings.Join(blocks, "\n\n")
}

// Options controls styled output.
type Options struct {
	ShowAnswers bool
	// Width wraps each card. Zero leaves lines unwrapped.
	Width int
}

// Styled renders one card per question with a coloured difficulty badge.
// Answers are shown only when opts.ShowAnswers is set; empty answers and
// follow-ups are skipped.
func Styled(questions []interview.QuestionItem, opts Options) string {
	if len(questions) == 0 {
		return theme.Hint.Render("No questions returned.")
	}

	card := theme.Card
	if opts.Width > 0 {
		card = card.Width(opts.Width)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Generated Questions"))
	b.WriteString("\n")

	for i, q := range questions {
		header := lipgloss.JoinHorizontal(lipgloss.Top,
			theme.Number.Render(fmt.Sprintf("%d.", i+1)),
			theme.Body.Render(q.Question),
			" ",
			theme.Badge(string(q.Difficulty)).Render(string(q.Difficulty)),
		)

		lines := []string{header}
		if q.Answer != "" {
			if opts.ShowAnswers {
				lines = append(lines, theme.Answer.Render(q.Answer))
			} else {
				lines = append(lines, theme.Hint.PaddingLeft(3).Render("answer hidden (--show-answers)"))
			}
		}
		if q.FollowUp != "" {
			lines = append(lines, theme.FollowUp.Render(theme.Label.Render("Follow-up:")+" "+q.FollowUp))
		}

		b.WriteString(card.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// Error renders a failure message.
func Error(msg string) string {
	return theme.ErrorText.Render(msg)
}
