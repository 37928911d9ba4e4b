package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parvatisuthar/fileexpo/analytics"
	"github.com/parvatisuthar/fileexpo/explorer"
	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

func newRecentCmd() *cobra.Command {
	var limit int
	var byCount bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently accessed files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimesvc.New(baseConfig())
			if err != nil {
				return err
			}
			defer rt.Close()

			var entries []analytics.UsageEntry
			if byCount {
				entries, err = rt.Usage.MostAccessed(limit)
			} else {
				entries, err = rt.Usage.RecentlyAccessed(limit)
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded accesses yet.")
				return nil
			}
			now := time.Now()
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-16s  %s\n",
					e.Accesses, explorer.FormatModTime(e.LastAccess, now), e.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of entries")
	cmd.Flags().BoolVar(&byCount, "by-count", false, "Rank by access count instead of recency")
	return cmd
}
