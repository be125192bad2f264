package app

import (
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/screens/home"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	// Backend serves the three assessment operations.
	Backend flow.Backend

	// Client answers the liveness probe and system status. Nil hides the
	// header indicator and the status screen reports the backend as
	// unconfigured.
	Client home.Prober

	// EventRepo stores completed assessments. Nil disables history.
	EventRepo store.EventRepo
}
