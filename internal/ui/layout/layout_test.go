package layout

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "short line", 20, "short line"},
		{"breaks", "one two three four", 9, "one two\nthree\nfour"},
		{"keeps newlines", "a b\n\nc", 10, "a b\n\nc"},
		{"long word", "supercalifragilistic ok", 5, "supercalifragilistic\nok"},
		{"zero width", "as is", 0, "as is"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.in, tt.width); got != tt.want {
				t.Errorf("Wrap = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderHeaderShowsStatus(t *testing.T) {
	for _, st := range []BackendStatus{StatusUnknown, StatusOnline, StatusOffline} {
		h := RenderHeader("Assessment", st, 100)
		if !strings.Contains(h, "InnerBalance") || !strings.Contains(h, st.String()) {
			t.Errorf("header for %s missing brand or status", st)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d, want 24", got)
	}
	if got := ContentHeight(2); got != 0 {
		t.Errorf("ContentHeight(2) = %d, want 0", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}
