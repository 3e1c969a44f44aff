package configfx

import (
	"fmt"

	"github.com/0x5457/book-rec/internal/config"
	"go.uber.org/fx"
)

// Params represents the parameters needed to create configuration.
// Non-empty values override the file and environment layers.
type Params struct {
	fx.In

	ConfigPath    string `name:"configPath"    optional:"true"`
	CatalogPath   string `name:"catalogPath"   optional:"true"`
	EmbedURL      string `name:"embedURL"      optional:"true"`
	EmbedProvider string `name:"embedProvider" optional:"true"`
	Addr          string `name:"addr"          optional:"true"`
}

// NewConfig loads configuration and applies command line overrides
func NewConfig(params Params) (*config.Config, error) {
	cfg, err := config.Load(params.ConfigPath)
	if err != nil {
		return nil, err
	}

	if params.CatalogPath != "" {
		cfg.Catalog.Path = params.CatalogPath
	}
	if params.EmbedURL != "" {
		cfg.Embed.URL = params.EmbedURL
	}
	if params.EmbedProvider != "" {
		cfg.Embed.Provider = params.EmbedProvider
	}
	if params.Addr != "" {
		cfg.Server.Addr = params.Addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line overrides: %w", err)
	}
	return cfg, nil
}

// Module provides configuration for the application
var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
