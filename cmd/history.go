package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse completed assessments",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed assessments, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.EventRepo().QueryAssessments(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s  %-17s  %-38s  %-8s  %7s  %s\n",
			"#", "When", "Assessment", "Risk", "Answers", "Mode")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		for _, r := range recs {
			mode := "remote"
			switch {
			case r.Offline:
				mode = "offline"
			case r.Fallback:
				mode = "local"
			}
			fmt.Fprintf(out, "%-5d  %-17s  %-38s  %-8s  %7d  %s\n",
				r.ID, r.Timestamp.Local().Format("2006-01-02 15:04"), r.AssessmentID,
				r.RiskLevel, r.InitialAnswers+r.FollowUpAnswers, mode)
		}

		fmt.Fprintf(out, "\n%d assessments\n", len(recs))
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <number>",
	Short: "Show the full result of one assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid assessment number %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.EventRepo().GetAssessment(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get assessment: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("no assessment #%d", id)
		}

		var doc any
		if err := json.Unmarshal(rec.Result, &doc); err != nil {
			return fmt.Errorf("decode stored result: %w", err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of assessments to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
