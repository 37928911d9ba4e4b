package cmd

import (
	"github.com/spf13/cobra"

	"github.com/parvatisuthar/fileexpo/app/fileexpo/tui"
	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "Open the interactive file browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				startDir = args[0]
			}
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	rt, err := runtimesvc.New(baseConfig())
	if err != nil {
		return err
	}
	defer rt.Close()
	return tui.Run(cmd.Context(), rt)
}
