package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the analysis service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Endpoint:   %s\n", d.client.Endpoint())

		if !d.client.Health(cmd.Context()) {
			fmt.Fprintln(out, "Reachable:  no")
			fmt.Fprintln(out, "\nThe assessment still works offline with built-in questions and local scoring.")
			return nil
		}
		fmt.Fprintln(out, "Reachable:  yes")

		st, err := d.client.SystemStatus(cmd.Context())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: system status unavailable: %v\n", err)
			return nil
		}
		fmt.Fprintf(out, "System:     %s %s\n", st.System, st.Version)
		fmt.Fprintf(out, "Model:      %s\n", loaded(st.LLMLoaded))
		fmt.Fprintf(out, "Vectors:    %s (%d knowledge base items)\n", loaded(st.VectorStoreReady), st.KnowledgeBaseItems)
		return nil
	},
}

func loaded(b bool) string {
	if b {
		return "ready"
	}
	return "not loaded"
}
