package questionnaire

import (
	"time"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
)

// eventMsg carries the outcome of a collaborator call back to the
// update loop.
type eventMsg struct {
	Event flow.Event
}

// spinnerTickMsg animates the busy indicator.
type spinnerTickMsg time.Time
