package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "dialogue",
		Short:         "Turn classroom video subtitles into speaker-attributed dialogue transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "config.yaml", "path to config file")

	cmd.AddCommand(
		newProcessCmd(flags),
		newFetchCmd(flags),
		newWatchCmd(flags),
		newHistoryCmd(flags),
	)
	return cmd
}
