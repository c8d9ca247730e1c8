package cmd

import (
	"fmt"
	"path/filepath"

	"codeagg/pkg/logging"
	"codeagg/pkg/selection"

	"github.com/spf13/cobra"
)

func newListCommand(opts *options) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "list <folder>",
		Short: "Print the files that would be aggregated, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %w", err)
			}

			var resolverOpts []selection.Option
			if verbose {
				resolverOpts = append(resolverOpts, selection.WithSkipHook(func(s selection.Skip) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skip %-12s %s\n", s.Reason, s.Path)
				}))
			}
			resolver := selection.NewResolver(opts.cfg.Filter(), logging.Logger, resolverOpts...)

			files, err := resolver.ResolveFolder(root, opts.cfg.Manifest)
			if err != nil {
				return err
			}
			for _, f := range files {
				rel, err := filepath.Rel(root, f)
				if err != nil {
					rel = f
				}
				fmt.Fprintln(cmd.OutOrStdout(), filepath.ToSlash(rel))
			}
			return nil
		},
	}
	addSelectionFlags(cmd)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print skipped paths to stderr")
	return cmd
}
