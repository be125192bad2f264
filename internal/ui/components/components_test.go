package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

var yesNo = []ChoiceOption{{Label: "Yes", Value: "Yes"}, {Label: "No", Value: "No"}}

var scale = []ChoiceOption{
	{Label: "0", Value: "0"},
	{Label: "1", Value: "1"},
	{Label: "2", Value: "2"},
	{Label: "3", Value: "3"},
}

func chosen(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a choice")
	}
	msg, ok := cmd().(ChoiceMadeMsg)
	if !ok {
		t.Fatal("expected ChoiceMadeMsg")
	}
	return msg.Value
}

func TestChoicePreselectsCurrent(t *testing.T) {
	c := NewChoice(scale, "2")
	if c.Selected != 2 || c.Chosen != 2 {
		t.Errorf("selected %d chosen %d, want 2 2", c.Selected, c.Chosen)
	}
	c = NewChoice(scale, "")
	if c.Selected != 0 || c.Chosen != -1 {
		t.Errorf("selected %d chosen %d, want 0 -1", c.Selected, c.Chosen)
	}
}

func TestChoiceKeys(t *testing.T) {
	tests := []struct {
		name    string
		options []ChoiceOption
		keys    []tea.KeyPressMsg
		want    string
	}{
		{"digit", scale, []tea.KeyPressMsg{{Code: '3', Text: "3"}}, "3"},
		{"arrows then enter", scale, []tea.KeyPressMsg{{Code: tea.KeyDown}, {Code: tea.KeyEnter}}, "1"},
		{"up stops at top", scale, []tea.KeyPressMsg{{Code: tea.KeyUp}, {Code: tea.KeyEnter}}, "0"},
		{"y", yesNo, []tea.KeyPressMsg{{Code: 'y', Text: "y"}}, "Yes"},
		{"n", yesNo, []tea.KeyPressMsg{{Code: 'n', Text: "n"}}, "No"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChoice(tt.options, "")
			var cmd tea.Cmd
			for _, k := range tt.keys {
				c, cmd = c.Update(k)
			}
			if got := chosen(t, cmd); got != tt.want {
				t.Errorf("chose %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChoiceIgnoresOutOfRangeDigit(t *testing.T) {
	c := NewChoice(scale, "")
	_, cmd := c.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	if cmd != nil {
		t.Error("expected no choice for 7")
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("selection = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("selection = %d, want 1", m.Selected)
	}
	if item, ok := m.SelectedItem(); !ok || item.Label != "B" {
		t.Errorf("SelectedItem = %+v", item)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{1.0 / 3.0, 33},
		{0.5, 50},
		{2.0 / 3.0, 67},
		{1, 100},
		{1.5, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestProgressBarShowsPercent(t *testing.T) {
	view := NewProgressBar("Progress", 0.25, true, 40).View()
	if !strings.Contains(view, "25%") || !strings.Contains(view, "Progress") {
		t.Errorf("view = %q", view)
	}
}

func TestButtonRow(t *testing.T) {
	row := ButtonRow(
		Button{Key: "Tab", Label: "Next", Enabled: true, Primary: true},
		Button{Label: "Submit"},
	)
	if !strings.Contains(row, "[Tab] Next") || !strings.Contains(row, "Submit") {
		t.Errorf("row = %q", row)
	}
}

func TestTextInputTrims(t *testing.T) {
	ti := NewTextInput("type", "  hello  ")
	if ti.Value() != "hello" {
		t.Errorf("Value = %q", ti.Value())
	}
}
