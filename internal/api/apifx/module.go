package apifx

import (
	"github.com/0x5457/book-rec/internal/api"
	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/config"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params represents dependencies for the HTTP API
type Params struct {
	fx.In

	Engine  *recommend.Engine
	Catalog *catalog.Catalog
	Config  *config.Config
	Logger  zerolog.Logger
}

// NewServer creates the HTTP API server
func NewServer(params Params) *api.Server {
	cfg := params.Config
	return api.NewServer(params.Engine, params.Catalog, api.Options{
		DefaultK:          cfg.Recommend.DefaultK,
		MaxK:              cfg.Recommend.MaxK,
		StaticDir:         cfg.Server.StaticDir,
		RateLimitRequests: cfg.Server.RateLimitRequests,
		RateLimitWindow:   cfg.Server.RateLimitWindow,
	}, params.Logger.With().Str("component", "api").Logger())
}

// Module provides the HTTP API
var Module = fx.Module("api",
	fx.Provide(NewServer),
)
