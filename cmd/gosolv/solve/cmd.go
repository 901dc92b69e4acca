package solve

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	channelArgs []string
	requestArgs []string
	timeoutArg  time.Duration
	budgetArg   int
	traceArg    bool
	listenArg   string
)

// NewCmd returns a command that solves package requests against channel
// listings.
func NewCmd() *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve package requests against channel listings",
		Long: `The gosolv solve command loads one or more channel listings,
        solves each request file against them, and prints the resulting
        transactions as YAML.

        Each request runs on its own pool, so several requests solve
        concurrently.

        $ gosolv solve -c channel.yaml -r request.yaml
        `,
		RunE: solveFunc,
	}

	solveCmd.Flags().StringSliceVarP(&channelArgs, "channel", "c", nil, "Channel listing to load. May be repeated.")
	if err := solveCmd.MarkFlagRequired("channel"); err != nil {
		log.Fatalf("Failed to mark `channel` flag for `solve` subcommand as required")
	}

	solveCmd.Flags().StringSliceVarP(&requestArgs, "request", "r", nil, "Request file to solve. May be repeated.")
	if err := solveCmd.MarkFlagRequired("request"); err != nil {
		log.Fatalf("Failed to mark `request` flag for `solve` subcommand as required")
	}

	solveCmd.Flags().DurationVar(&timeoutArg, "timeout", 0, "Abort solves running longer than this. Zero means no limit.")
	solveCmd.Flags().IntVar(&budgetArg, "decision-budget", 0, "Abort solves after this many decisions. Zero means no limit.")
	solveCmd.Flags().BoolVar(&traceArg, "trace", false, "Write the conflicts the search runs into to stderr.")
	solveCmd.Flags().StringVar(&listenArg, "metrics-addr", "", "Serve Prometheus metrics on this address while solving.")

	return solveCmd
}
