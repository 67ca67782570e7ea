package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// orderedWellKnownTypes fixes the print order of list-types, since
// iterating wellKnownTypes directly would print in random map order.
var orderedWellKnownTypes = []string{
	"version", "pboot", "pboot_version", "pker", "prootfs", "description",
}

func newListTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-types",
		Short: "List the well-known partition type mnemonics",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Supported partition types:")
			for _, name := range orderedWellKnownTypes {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
	return cmd
}
