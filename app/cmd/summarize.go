package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	runtimesvc "github.com/parvatisuthar/fileexpo/internal/fileexpo/runtime"
	"github.com/parvatisuthar/fileexpo/summarize"
)

func newSummarizeCmd() *cobra.Command {
	var words int
	cmd := &cobra.Command{
		Use:   "summarize <path>",
		Short: "Summarize a document with the configured model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := baseConfig()
			if words > 0 {
				cfg.SummaryWords = words
			}
			rt, err := runtimesvc.New(cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			summary, err := rt.Summarizer.Summarize(cmd.Context(), path)
			if err != nil {
				if errors.Is(err, summarize.ErrUnsupportedFormat) {
					return fmt.Errorf("%w (supported: %s)", err, strings.Join(rt.Summarizer.Supported(), ", "))
				}
				return err
			}
			rt.RecordAccess(path)
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
	cmd.Flags().IntVar(&words, "words", 0, "Maximum summary length in words")
	return cmd
}
