// Package screen defines the contract shared by every TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/ui/layout"
)

// Screen is one page of the application. The router owns the stack and
// forwards messages to the active screen only.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer
// hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// BackendStatusMsg reports a fresh observation of the collaborator's
// reachability. The app updates its header and forwards the message.
type BackendStatusMsg struct {
	Status layout.BackendStatus
}
