package main

import (
	"github.com/spf13/cobra"
)

func newFetchCmd(flags *rootFlags) *cobra.Command {
	o := &runOverrides{}
	var fetchOnly bool
	cmd := &cobra.Command{
		Use:   "fetch <BV id | video URL>",
		Short: "Fetch a video's subtitle with the configured command, then process it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags.configPath, o)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.proc.Fetch(ctx, args[0])
			if err != nil {
				return err
			}
			a.log.Info(ctx, "Subtitle saved: %s", path)
			if fetchOnly {
				return nil
			}

			manifest, err := a.proc.ProcessFile(ctx, path)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), manifest)
		},
	}
	addRunFlags(cmd, o)
	cmd.Flags().BoolVar(&fetchOnly, "fetch-only", false, "download the subtitle without processing it")
	return cmd
}
