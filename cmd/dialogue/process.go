package main

import (
	"github.com/spf13/cobra"
)

func addRunFlags(cmd *cobra.Command, o *runOverrides) {
	cmd.Flags().StringVar(&o.extras, "extras", "", "optional outputs, comma-separated: lesson-plan,observation-note")
	cmd.Flags().BoolVar(&o.docx, "docx", false, "also write Word documents")
	cmd.Flags().BoolVar(&o.refine, "refine", false, "add a Gemini-refined dialogue variant")
}

func newProcessCmd(flags *rootFlags) *cobra.Command {
	o := &runOverrides{}
	cmd := &cobra.Command{
		Use:   "process <subtitle-file>",
		Short: "Process a Bilibili subtitle JSON or SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags.configPath, o)
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Debug(ctx, "Extras: %s", joinExtras(a.cfg.Output.Extras))
			manifest, err := a.proc.ProcessFile(ctx, args[0])
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), manifest)
		},
	}
	addRunFlags(cmd, o)
	return cmd
}
