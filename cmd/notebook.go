package cmd

import (
	"errors"
	"fmt"
	"os"

	"codeagg/pkg/clipboard"
	"codeagg/pkg/logging"
	"codeagg/pkg/notebook"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newNotebookCommand(opts *options) *cobra.Command {
	var stdout bool
	cmd := &cobra.Command{
		Use:   "notebook <path.ipynb>",
		Short: "Flatten a Jupyter notebook into plain text",
		Long: `Flatten a Jupyter notebook into plain text. Markdown cells are copied
verbatim, code cells are fenced and followed by their text outputs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, err := notebook.Load(args[0])
			if err != nil {
				logging.Logger.Error("Failed to load notebook", zap.String("path", args[0]), zap.Error(err))
				return err
			}
			text := notebook.Format(nb)

			if stdout || !opts.cfg.Clipboard || !isTerminal(os.Stdout) {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}

			if err := newClipboard().WriteAll(text); err != nil {
				if errors.Is(err, clipboard.ErrUnavailable) {
					logging.Logger.Warn("Clipboard unavailable", zap.Error(err))
					_, _ = color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(),
						"Clipboard unavailable (install xclip, xsel or wl-clipboard to enable it); use --stdout instead.")
					return nil
				}
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintln(cmd.ErrOrStderr(), "Notebook copied to clipboard!")
			return nil
		},
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the flattened notebook instead of copying it")
	cmd.Flags().Bool("clipboard", true, "Copy the flattened notebook to the clipboard")
	return cmd
}
