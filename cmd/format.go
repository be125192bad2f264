package cmd

import "github.com/charmbracelet/x/ansi"

// truncate shortens s to at most width terminal cells, ending in "...".
// Multi-byte runes and wide characters are never split.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "...")
}
