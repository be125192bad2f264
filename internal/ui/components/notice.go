package components

import (
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/theme"
)

// NoticeLevel selects the banner color.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice renders a dismissible banner wrapped to width.
func Notice(level NoticeLevel, text string, width int) string {
	style := theme.NoticeInfo
	switch level {
	case NoticeWarning:
		style = theme.NoticeWarning
	case NoticeError:
		style = theme.NoticeError
	}
	return style.Render(layout.Wrap(text, width-4))
}
