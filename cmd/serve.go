package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/stubserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local stub of the analysis service",
	Long: `Serve the analysis endpoints with deterministic answers.

Useful for trying the client without the real service. --fail-first makes
each endpoint answer 503 for its first n requests so the retry path can be
observed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		failFirst, _ := cmd.Flags().GetInt("fail-first")
		delay, _ := cmd.Flags().GetDuration("delay")
		noFollowUps, _ := cmd.Flags().GetBool("no-follow-ups")
		logRequests, _ := cmd.Flags().GetBool("log")

		opts := stubserver.Options{
			FailFirst:   failFirst,
			Delay:       delay,
			LogRequests: logRequests,
			Version:     version,
		}
		if noFollowUps {
			opts.FollowUps = []string{}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Stub server listening on http://%s (Ctrl+C to stop)\n", addr)
		fmt.Fprintf(cmd.OutOrStdout(), "Point the client at it with INNERBALANCE_API_URL=http://%s INNERBALANCE_API_BASE_URL=http://%s/api\n", addr, addr)
		return stubserver.New(opts).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8000", "Listen address")
	serveCmd.Flags().Int("fail-first", 0, "Answer the first n requests to each endpoint with 503")
	serveCmd.Flags().Duration("delay", 0, "Delay added before every response")
	serveCmd.Flags().Bool("no-follow-ups", false, "Return no follow-up questions from the analysis")
	serveCmd.Flags().Bool("log", false, "Log each request")
}
