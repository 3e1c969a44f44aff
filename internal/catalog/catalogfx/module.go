package catalogfx

import (
	"context"

	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params represents dependencies for the catalog
type Params struct {
	fx.In

	Config *config.Config
	Logger zerolog.Logger
}

// NewCatalog loads the catalog once for the lifetime of the app
func NewCatalog(params Params) *catalog.Catalog {
	return catalog.Load(context.Background(), catalog.Options{
		Path:            params.Config.Catalog.Path,
		CoversDir:       params.Config.Catalog.CoversDir,
		CoversURLPrefix: params.Config.Catalog.CoversURLPrefix,
	}, params.Logger.With().Str("component", "catalog").Logger())
}

// Module provides the book catalog
var Module = fx.Module("catalog",
	fx.Provide(NewCatalog),
)
