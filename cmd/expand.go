package cmd

import (
	"fmt"

	"codeagg/pkg/manifest"

	"github.com/spf13/cobra"
)

func newExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "expand <pattern>...",
		Short:   "Print the paths a manifest line expands to",
		Example: `  codeagg expand 'src:{main.rs, ecs:{components, light.rs}}'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, pattern := range args {
				for _, p := range manifest.Expand(pattern) {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}
			return nil
		},
	}
}
