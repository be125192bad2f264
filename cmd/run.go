package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Backend:   d.service,
		Client:    d.client,
		EventRepo: d.events,
	})
}
