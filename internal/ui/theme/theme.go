package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: muted and calm, readable on dark terminals.
var (
	Primary   = lipgloss.Color("#7C9CBF") // Soft blue
	Secondary = lipgloss.Color("#6FB3A8") // Sage teal
	Accent    = lipgloss.Color("#C8A2C8") // Lilac
	Success   = lipgloss.Color("#7FB77E") // Leaf green
	Warning   = lipgloss.Color("#E3B56B") // Amber
	Error     = lipgloss.Color("#D9777A") // Dusty rose
	Text      = lipgloss.Color("#E8ECEF") // Off-white
	TextDim   = lipgloss.Color("#8E9AA6") // Slate
	BgDark    = lipgloss.Color("#151B22") // Night
	BgCard    = lipgloss.Color("#1F2730") // Card
	Border    = lipgloss.Color("#36424F") // Slate border
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Notices, one per severity.
var (
	NoticeInfo = lipgloss.NewStyle().
			Foreground(Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	NoticeWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Warning).
			Padding(0, 1)

	NoticeError = lipgloss.NewStyle().
			Foreground(Error).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Error).
			Padding(0, 1)
)

// RiskColor maps a risk level name to its display color.
func RiskColor(level string) lipgloss.Style {
	switch level {
	case "high":
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	case "moderate":
		return lipgloss.NewStyle().Foreground(Warning).Bold(true)
	case "low":
		return lipgloss.NewStyle().Foreground(Success).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(TextDim)
	}
}
