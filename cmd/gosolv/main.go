package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conda/gosolv/cmd/gosolv/solve"
	"github.com/conda/gosolv/pkg/lib/signals"
	"github.com/conda/gosolv/pkg/version"
)

func main() {
	var rootCmd = &cobra.Command{
		Short: "gosolv",
		Long:  `A dependency solver for package channels.`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solve.NewCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the gosolv version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	})

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	if err := rootCmd.ExecuteContext(signals.Context()); err != nil {
		os.Exit(1)
	}
}
