package cmd

import (
	"os"

	"codeagg/pkg/aggregate"
	"codeagg/pkg/clipboard"
	"codeagg/pkg/logging"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Overridden in tests.
var (
	newClipboard = clipboard.System
	isTerminal   = func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }
)

type aggregateFlags struct {
	stdout  bool
	verbose bool
}

func addAggregateFlags(cmd *cobra.Command, flags *aggregateFlags) {
	addSelectionFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Also write the aggregated text to this file")
	cmd.Flags().Bool("clipboard", true, "Copy the aggregated text to the clipboard")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "Print the aggregated text instead of copying it (implied when stdout is not a terminal)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Report skipped manifest entries")
}

func newAggregateCommand(opts *options) *cobra.Command {
	var flags aggregateFlags
	cmd := &cobra.Command{
		Use:   "aggregate <folder>",
		Short: "Concatenate the selected files of a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, opts, args[0], &flags)
		},
	}
	addAggregateFlags(cmd, &flags)
	return cmd
}

func runAggregate(cmd *cobra.Command, opts *options, folder string, flags *aggregateFlags) error {
	cfg := opts.cfg
	stdout := flags.stdout || !isTerminal(os.Stdout) || (!cfg.Clipboard && cfg.Output == "")

	args := &aggregate.Arguments{
		Directory:    folder,
		ManifestName: cfg.Manifest,
		Filter:       cfg.Filter(),
		Output:       cfg.Output,
		Stdout:       stdout,
		Clipboard:    cfg.Clipboard && !stdout,
		Verbose:      flags.verbose,
	}
	env := aggregate.Env{
		Stdout:    cmd.OutOrStdout(),
		Status:    cmd.ErrOrStderr(),
		Clipboard: newClipboard(),
	}
	return aggregate.Run(args, env, logging.Logger)
}
