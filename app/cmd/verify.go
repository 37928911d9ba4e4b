package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [dir]",
		Short: "Verify ledgered files under a directory against their recorded hashes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimesvc.New(baseConfig())
			if err != nil {
				return err
			}
			defer rt.Close()

			dir := rt.Config.StartDir
			if len(args) == 1 {
				if dir, err = filepath.Abs(args[0]); err != nil {
					return err
				}
			}
			result, err := rt.Health.VerifyAll(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			total := len(result.OK) + len(result.Changed) + len(result.Missing)
			if total == 0 {
				fmt.Fprintf(out, "No ledgered files under %s\n", dir)
				return nil
			}
			for _, p := range result.Changed {
				fmt.Fprintf(out, "changed  %s\n", p)
			}
			for _, p := range result.Missing {
				fmt.Fprintf(out, "missing  %s\n", p)
			}
			fmt.Fprintf(out, "%d verified: %d ok, %d changed, %d missing\n",
				total, len(result.OK), len(result.Changed), len(result.Missing))
			return nil
		},
	}
	return cmd
}
