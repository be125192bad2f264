package components

import (
	"charm.land/lipgloss/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

// Button is a labelled action that can be disabled.
type Button struct {
	Key     string
	Label   string
	Enabled bool
	Primary bool
}

var (
	buttonEnabled = lipgloss.NewStyle().
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)

	buttonPrimary = lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.Primary).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1)

	buttonDisabled = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BgCard).
			Padding(0, 1)
)

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	switch {
	case !b.Enabled:
		return buttonDisabled.Render(label)
	case b.Primary:
		return buttonPrimary.Render(label)
	default:
		return buttonEnabled.Render(label)
	}
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, 2*len(buttons))
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}
