package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	var (
		videoID string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := loadApp(ctx, flags.configPath, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.store == nil {
				return errors.New("store.enabled is off: no run archive to read")
			}

			runs, err := a.store.RecentRuns(ctx, videoID, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				tr, err := a.store.Turns(ctx, r.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s  %s  %s  turns=%d warnings=%d\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.ID, r.VideoID, r.Title, len(tr.Turns), len(r.Warnings))
				names := make([]string, 0, len(r.Artifacts))
				for name := range r.Artifacts {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "    %-28s %s\n", name, r.Artifacts[name])
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&videoID, "video", "", "only runs of this BV id")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}
