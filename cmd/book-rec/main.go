package main

import (
	"os"

	"github.com/0x5457/book-rec/cmd/book-rec/commands"
	"github.com/spf13/cobra"
)

func main() {
	flags := &commands.GlobalFlags{}
	rootCmd := &cobra.Command{
		Use:           "book-rec",
		Short:         "Book recommendations from free-text queries",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags.Register(rootCmd)

	rootCmd.AddCommand(
		commands.NewServeCommand(flags),
		commands.NewRecommendCommand(flags),
		commands.NewGenresCommand(flags),
		commands.NewCatalogCommand(flags),
		commands.NewMCPServeCommand(flags),
		commands.NewMCPClientCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
