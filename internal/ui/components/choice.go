package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

// ChoiceOption is one selectable answer. Value is what gets recorded.
type ChoiceOption struct {
	Label string
	Value string
}

// Choice is a vertical single-answer selector. Chosen marks the option
// that is currently recorded, which may differ from the highlighted one.
type Choice struct {
	Options  []ChoiceOption
	Selected int
	Chosen   int
}

// NewChoice creates a selector. current preselects the option whose
// Value matches; pass "" when nothing has been recorded yet.
func NewChoice(options []ChoiceOption, current string) Choice {
	c := Choice{Options: options, Chosen: -1}
	for i, o := range options {
		if current != "" && o.Value == current {
			c.Selected = i
			c.Chosen = i
			break
		}
	}
	return c
}

// ChoiceMadeMsg is emitted when the user picks an option.
type ChoiceMadeMsg struct {
	Value string
}

// Update handles keyboard navigation and selection. Digits pick the
// option at that position directly: 0-based for numeric values, so a
// scale of 0..3 maps to the keys 0..3.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter", "space", " ":
		return c.choose(c.Selected)
	}

	for i, o := range c.Options {
		if strings.EqualFold(key, o.Value) || (len(key) == 1 && strings.EqualFold(key, o.Value[:1]) && !isDigit(key)) {
			return c.choose(i)
		}
	}
	return c, nil
}

func (c Choice) choose(i int) (Choice, tea.Cmd) {
	c.Selected = i
	c.Chosen = i
	v := c.Options[i].Value
	return c, func() tea.Msg { return ChoiceMadeMsg{Value: v} }
}

func isDigit(s string) bool {
	return s >= "0" && s <= "9"
}

// View renders the options.
func (c Choice) View() string {
	var b strings.Builder
	for i, o := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s  %s", prefix, mark, o.Label)

		switch {
		case i == c.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
