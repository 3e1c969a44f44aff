package commands

import (
	"strings"

	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

func NewRecommendCommand(flags *GlobalFlags) *cobra.Command {
	var (
		topK    int
		explain bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend [query]",
		Short: "Recommend books for a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withRunner(cmd.Context(), flags.overrides(), func(r *cmdsfx.CommandRunner) error {
				return r.RunRecommend(cmd.Context(), query, topK, explain, asJSON)
			})
		},
	}

	cmd.Flags().IntVarP(&topK, "k", "k", 0, "number of results (default from config)")
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "show which strategy produced the results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
