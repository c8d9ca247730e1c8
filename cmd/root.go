package cmd

import (
	"codeagg/pkg/config"
	"codeagg/pkg/logging"
	"codeagg/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps configuration keys to the flag names that override them.
var flagKeys = map[string]string{
	"manifest":       "manifest",
	"extensions":     "ext",
	"reserved_names": "reserved",
	"exclude_dirs":   "exclude-dir",
	"clipboard":      "clipboard",
	"output":         "output",
	"debug":          "debug",
}

// options is the state shared by the commands of one invocation.
type options struct {
	viper      *viper.Viper
	configFile string
	cfg        *config.Config
}

// NewRootCommand creates the codeagg command tree. Run with a single folder
// argument it aggregates that folder, like the aggregate subcommand.
func NewRootCommand() *cobra.Command {
	opts := &options{viper: viper.New()}
	var flags aggregateFlags

	cmd := &cobra.Command{
		Use:   "codeagg <folder>",
		Short: "codeagg concatenates the source files of a folder into one text",
		Long: `codeagg walks a folder, selects source files by extension or by the
inclusion list in code_to_aggregate.txt, and concatenates them into a single
text, each file preceded by a "// <path>" header. The result is copied to the
clipboard, written to a file, or printed.`,
		Version:           version.Get().Version,
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: opts.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, opts, args[0], &flags)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default $HOME/.codeagg/config.yaml or ./config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	addAggregateFlags(cmd, &flags)

	cmd.AddCommand(newAggregateCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newExpandCommand())
	cmd.AddCommand(newNotebookCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// load binds the flags of the running command, reads the configuration and sets up logging.
func (o *options) load(cmd *cobra.Command, _ []string) error {
	// Arguments are valid at this point; later failures are not usage errors.
	cmd.SilenceUsage = true

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := o.viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Load(o.viper, o.configFile)
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.Debug, "codeagg", version.Get().Version); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// addSelectionFlags registers the flags that shape file selection.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("manifest", "", "Manifest file name inside the folder (default code_to_aggregate.txt)")
	cmd.Flags().StringSlice("ext", nil, "Allowed file extensions, e.g. .rs,.py (replaces the configured list)")
	cmd.Flags().StringSlice("reserved", nil, "File names selected regardless of extension (replaces the configured list)")
	cmd.Flags().StringSlice("exclude-dir", nil, "Directory names or glob patterns to skip (replaces the configured list)")
}
