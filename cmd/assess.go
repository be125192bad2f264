package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/console"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take the assessment in line mode (no full-screen UI)",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		s := &console.Session{
			Backend: d.service,
			Events:  d.events,
			In:      cmd.InOrStdin(),
			Out:     out,
		}
		o, err := s.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "\nYour results:")
		return console.WriteOutcome(out, o)
	},
}
