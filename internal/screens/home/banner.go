package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

const titleFull = `╦┌┐┌┌┐┌┌─┐┬─┐╔╗ ┌─┐┬  ┌─┐┌┐┌┌─┐┌─┐
║│││││││├┤ ├┬┘╠╩╗├─┤│  ├─┤││││  ├┤
╩┘└┘┘└┘└─┘┴└─╚═╝┴ ┴┴─┘┴ ┴┘└┘└─┘└─┘`

const titleCompact = "I N N E R   B A L A N C E"

const tagline = "A quiet check-in with yourself"

const disclaimer = "This self-check is not a diagnosis. If you are in crisis, contact local emergency services."

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art)
	sub := theme.Hint.Render(tagline)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

func renderStats(taken int, lastRisk string, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var line string
	switch {
	case taken == 0:
		line = dim.Render("No check-ins yet")
	case lastRisk == "":
		line = dim.Render(fmt.Sprintf("%d check-ins", taken))
	default:
		line = dim.Render(fmt.Sprintf("%d check-ins · last result ", taken)) + theme.RiskColor(lastRisk).Render(lastRisk)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(line)
}

func renderDisclaimer(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Hint.Render(layout.Wrap(disclaimer, cw)))
}
