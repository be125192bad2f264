package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Show the baseline question set",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		res := d.service.FetchQuestions(cmd.Context())
		out := cmd.OutOrStdout()

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Payload)
		}

		fmt.Fprintf(out, "%-6s  %-7s  %-16s  %s\n", "ID", "Type", "Category", "Text")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, q := range res.Payload.Questions {
			fmt.Fprintf(out, "%-6s  %-7s  %-16s  %s\n", q.ID, q.Type, q.Category, truncate(q.Text, 64))
		}

		fmt.Fprintf(out, "\n%d questions (source: %s)\n", len(res.Payload.Questions), res.Source)
		if res.IsFallback() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: using built-in questions: %v\n", res.Reason)
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().Bool("json", false, "Print the question set as JSON")
}
