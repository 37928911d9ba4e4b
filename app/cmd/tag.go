package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/parvatisuthar/fileexpo/tagging"
)

func newTagCmd() *cobra.Command {
	tag := &cobra.Command{
		Use:   "tag",
		Short: "Manage file tags",
	}
	tag.AddCommand(
		newTagAddCmd(),
		newTagRmCmd(),
		newTagLsCmd(),
		newTagFindCmd(),
		newTagAllCmd(),
		newTagPruneCmd(),
		newTagResetCmd(),
	)
	return tag
}

// openTags opens just the tag store, without spinning up the whole runtime.
func openTags() (*tagging.Store, string, error) {
	cfg := baseConfig()
	if err := cfg.Normalize(); err != nil {
		return nil, "", err
	}
	store, err := tagging.Open(cfg.TagsPath)
	if err != nil {
		return nil, cfg.TagsPath, err
	}
	return store, cfg.TagsPath, nil
}

func absArg(arg string) (string, error) {
	return filepath.Abs(arg)
}

func newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path> <tag>",
		Short: "Attach a tag to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openTags()
			if err != nil {
				return err
			}
			path, err := absArg(args[0])
			if err != nil {
				return err
			}
			changed, err := store.Add(path, args[1])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already tagged %q\n", path, args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tagged %s %q\n", path, args[1])
			return nil
		},
	}
}

func newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path> <tag>",
		Aliases: []string{"remove"},
		Short:   "Detach a tag from a file",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openTags()
			if err != nil {
				return err
			}
			path, err := absArg(args[0])
			if err != nil {
				return err
			}
			removed, err := store.Remove(path, args[1])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s was not tagged %q\n", path, args[1])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %q from %s\n", args[1], path)
			return nil
		},
	}
}

func newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls <path>",
		Aliases: []string{"list"},
		Short:   "List tags on a file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openTags()
			if err != nil {
				return err
			}
			path, err := absArg(args[0])
			if err != nil {
				return err
			}
			for _, tag := range store.Tags(path) {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newTagFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <tag>",
		Short: "List files carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openTags()
			if err != nil {
				return err
			}
			for _, path := range store.FindByTag(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}

func newTagAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openTags()
			if err != nil {
				return err
			}
			for _, tag := range store.All() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newTagPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop tags whose files no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openTags()
			if err != nil {
				return err
			}
			removed, err := store.Prune()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries\n", removed)
			return nil
		},
	}
}

func newTagResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reinitialize a corrupt tag store (keeps a .corrupt backup)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := baseConfig()
			if err := cfg.Normalize(); err != nil {
				return err
			}
			if _, err := tagging.Reset(cfg.TagsPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tag store reset at %s\n", cfg.TagsPath)
			return nil
		},
	}
}
