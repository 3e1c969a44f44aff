package commands

import (
	"context"
	"fmt"

	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/0x5457/book-rec/internal/app/appfx"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// GlobalFlags are the persistent flags shared by every subcommand
type GlobalFlags struct {
	ConfigPath    string
	CatalogPath   string
	EmbedURL      string
	EmbedProvider string
}

// Register binds the flags to the root command
func (g *GlobalFlags) Register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVarP(&g.ConfigPath, "config", "c", "", "config file (yaml)")
	pf.StringVar(&g.CatalogPath, "catalog", "", "catalog path (.csv or SQLite)")
	pf.StringVar(&g.EmbedURL, "embed-url", "", "embedding API address")
	pf.StringVar(&g.EmbedProvider, "embed-provider", "", "embedding provider (api, local)")
}

func (g *GlobalFlags) overrides() appfx.Overrides {
	return appfx.Overrides{
		ConfigPath:    g.ConfigPath,
		CatalogPath:   g.CatalogPath,
		EmbedURL:      g.EmbedURL,
		EmbedProvider: g.EmbedProvider,
	}
}

// withRunner starts the application graph, hands the command runner to fn
// and stops the graph afterwards.
func withRunner(
	ctx context.Context,
	o appfx.Overrides,
	fn func(*cmdsfx.CommandRunner) error,
) error {
	var runner *cmdsfx.CommandRunner
	app := appfx.NewAppWithConfig(o, fx.Populate(&runner))

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}
	runErr := fn(runner)

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
