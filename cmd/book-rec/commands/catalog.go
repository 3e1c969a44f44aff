package commands

import (
	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewCatalogCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the loaded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(cmd.Context(), flags.overrides(), func(r *cmdsfx.CommandRunner) error {
				return r.RunCatalog()
			})
		},
	}
}
