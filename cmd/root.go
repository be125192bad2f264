package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/app"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "innerbalance",
	Short: "Mental wellbeing self-assessment",
	Long:  "InnerBalance: a terminal self-assessment for mood and wellbeing, backed by a remote analysis service with offline fallbacks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile == "" {
			return app.Bootstrap()
		}
		return app.Bootstrap(envFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INNERBALANCE_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file instead of ./.env")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then INNERBALANCE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
