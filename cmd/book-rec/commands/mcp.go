package commands

import (
	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

// NewMCPServeCommand starts an MCP server that exposes the recommender tools.
func NewMCPServeCommand(flags *GlobalFlags) *cobra.Command {
	var (
		transport string
		address   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run MCP server",
		Long:  "Run MCP server, provide recommend_books, detect_genres and list_books tools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(cmd.Context(), flags.overrides(), func(r *cmdsfx.CommandRunner) error {
				return r.RunMCPServer(transport, address)
			})
		},
	}

	cmd.Flags().
		StringVarP(&transport, "transport", "t", "stdio", "transport (stdio, http, sse)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "server address (http modes), e.g. :8080")

	return cmd
}
