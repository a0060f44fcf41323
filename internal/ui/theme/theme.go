package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#6366F1") // Indigo
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	Error   = lipgloss.Color("#F43F5E") // Rose

	Easy   = lipgloss.Color("#22C55E") // Green
	Medium = lipgloss.Color("#EAB308") // Yellow
	Hard   = lipgloss.Color("#EF4444") // Red
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Number = lipgloss.NewStyle().
		Foreground(TextDim).
		MarginRight(1)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Answer = lipgloss.NewStyle().
		Foreground(Text).
		PaddingLeft(3)

	FollowUp = lipgloss.NewStyle().
			Foreground(TextDim).
			PaddingLeft(3)
)

var badge = lipgloss.NewStyle().
	Bold(true).
	Padding(0, 1)

// Badge returns the difficulty badge style. Unknown labels render grey.
func Badge(difficulty string) lipgloss.Style {
	switch difficulty {
	case "Easy":
		return badge.Foreground(Easy)
	case "Medium":
		return badge.Foreground(Medium)
	case "Hard":
		return badge.Foreground(Hard)
	default:
		return badge.Foreground(TextDim)
	}
}
