package appfx

import (
	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/0x5457/book-rec/internal/api/apifx"
	"github.com/0x5457/book-rec/internal/catalog/catalogfx"
	"github.com/0x5457/book-rec/internal/config/configfx"
	"github.com/0x5457/book-rec/internal/embeddings/embeddingsfx"
	"github.com/0x5457/book-rec/internal/logging/loggingfx"
	"github.com/0x5457/book-rec/internal/mcp/mcpfx"
	"github.com/0x5457/book-rec/internal/recommend/recommendfx"
	"go.uber.org/fx"
)

// Module combines all application modules
var Module = fx.Options(
	configfx.Module,
	loggingfx.Module,
	catalogfx.Module,
	embeddingsfx.Module,
	recommendfx.Module,
	apifx.Module,
	mcpfx.Module,
	cmdsfx.Module,
)

// Overrides carries command line values that win over file and env config.
// Empty fields are ignored.
type Overrides struct {
	ConfigPath    string
	CatalogPath   string
	EmbedURL      string
	EmbedProvider string
	Addr          string
}

// Supply turns overrides into the named values configfx expects
func (o Overrides) Supply() fx.Option {
	return fx.Supply(
		fx.Annotate(o.ConfigPath, fx.ResultTags(`name:"configPath"`)),
		fx.Annotate(o.CatalogPath, fx.ResultTags(`name:"catalogPath"`)),
		fx.Annotate(o.EmbedURL, fx.ResultTags(`name:"embedURL"`)),
		fx.Annotate(o.EmbedProvider, fx.ResultTags(`name:"embedProvider"`)),
		fx.Annotate(o.Addr, fx.ResultTags(`name:"addr"`)),
	)
}

// NewAppWithConfig creates an Fx app with the given overrides.
// Extra options, typically fx.Populate targets, are appended.
func NewAppWithConfig(o Overrides, opts ...fx.Option) *fx.App {
	base := []fx.Option{
		fx.WithLogger(loggingfx.NewFxLogger),
		Module,
		o.Supply(),
		recommendfx.Warmup,
	}
	return fx.New(append(base, opts...)...)
}

// NewApp creates an Fx app with default configuration
func NewApp(opts ...fx.Option) *fx.App {
	return NewAppWithConfig(Overrides{}, opts...)
}
