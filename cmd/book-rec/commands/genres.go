package commands

import (
	"strings"

	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewGenresCommand(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "genres [query]",
		Short: "Show the genres detected in a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withRunner(cmd.Context(), flags.overrides(), func(r *cmdsfx.CommandRunner) error {
				return r.RunGenres(query)
			})
		},
	}
}
