package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect logged requests to the analysis service",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List request attempts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetDuration("since")
		failed, _ := cmd.Flags().GetBool("failed")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit, FailedOnly: failed}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		recs, err := st.EventRepo().QueryRequests(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-19s  %-16s  %-6s  %-22s  %6s  %8s  %s\n",
			"When", "Operation", "Method", "Path", "Status", "Latency", "Error")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, r := range recs {
			errText := ""
			if !r.Success {
				errText = r.ErrorKind
				if r.ErrorMessage != "" {
					errText += ": " + r.ErrorMessage
				}
				errText = truncate(errText, 60)
			}
			fmt.Fprintf(out, "%-19s  %-16s  %-6s  %-22s  %6d  %6dms  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Operation, r.Method,
				r.Path, r.Status, r.LatencyMs, errText)
		}

		fmt.Fprintf(out, "\n%d requests\n", len(recs))
		return nil
	},
}

func init() {
	requestsListCmd.Flags().Int("limit", 50, "Maximum number of requests to show")
	requestsListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 1h)")
	requestsListCmd.Flags().Bool("failed", false, "Only show failed attempts")

	requestsCmd.AddCommand(requestsListCmd)
}
