package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/parvatisuthar/fileexpo/explorer"
	"github.com/parvatisuthar/fileexpo/health"
	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

func newStatsCmd() *cobra.Command {
	var showTrail bool
	cmd := &cobra.Command{
		Use:   "stats <path>",
		Short: "Show usage statistics and health for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimesvc.New(baseConfig())
			if err != nil {
				return err
			}
			defer rt.Close()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			stats, err := rt.Usage.Stats(path)
			if err != nil {
				return err
			}
			if stats == nil {
				fmt.Fprintf(out, "%s: no recorded accesses\n", path)
			} else {
				now := time.Now()
				fmt.Fprintf(out, "%s\n", path)
				fmt.Fprintf(out, "  accesses:     %d\n", stats.Accesses)
				fmt.Fprintf(out, "  first access: %s\n", explorer.FormatModTime(stats.FirstAccess, now))
				fmt.Fprintf(out, "  last access:  %s\n", explorer.FormatModTime(stats.LastAccess, now))
				fmt.Fprintf(out, "  per day:      %.2f\n", stats.PerDay)
			}

			if problems := health.Problems(path); len(problems) > 0 {
				fmt.Fprintln(out, "  problems:")
				for _, p := range problems {
					fmt.Fprintf(out, "    - %s\n", p)
				}
			} else {
				fmt.Fprintln(out, "  problems:     none")
			}

			report, err := rt.Health.Check(path)
			if err != nil {
				return err
			}
			switch {
			case !report.Exists:
				fmt.Fprintln(out, "  integrity:    missing")
			case report.FirstCheck:
				fmt.Fprintln(out, "  integrity:    baseline recorded")
			case report.Changed:
				fmt.Fprintf(out, "  integrity:    changed since %s\n",
					explorer.FormatModTime(report.LastVerified, time.Now()))
			default:
				fmt.Fprintln(out, "  integrity:    unchanged")
			}

			if showTrail {
				trail, err := rt.Usage.Trail(path)
				if err != nil {
					return err
				}
				if len(trail) > 0 {
					fmt.Fprintln(out, "  recent accesses:")
					now := time.Now()
					for _, at := range trail {
						fmt.Fprintf(out, "    %s\n", explorer.FormatModTime(at, now))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTrail, "trail", false, "Include the recent access trail")
	return cmd
}
