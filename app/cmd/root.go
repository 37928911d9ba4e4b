package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
)

var (
	startDir string
	dataDir  string
	debug    bool
)

// Execute is the entry point for the CLI. Interrupts cancel the command
// context so the TUI and summarizer shut down cleanly.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fileexpo",
		Short:         "Terminal file manager with tagging and AI summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation opens the browser.
			return runBrowse(cmd)
		},
	}
	root.PersistentFlags().StringVar(&startDir, "dir", "", "Directory to start in (default: cwd)")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.fileexpo)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newBrowseCmd(),
		newTagCmd(),
		newSummarizeCmd(),
		newRecentCmd(),
		newStatsCmd(),
		newVerifyCmd(),
		newConfigCmd(),
	)
	return root
}

// baseConfig folds the global flags into a runtime config.
func baseConfig() runtimesvc.Config {
	cfg := runtimesvc.DefaultConfig()
	if startDir != "" {
		cfg.StartDir = startDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	cfg.Debug = debug
	return cfg
}
