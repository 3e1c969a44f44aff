package embeddingsfx

import (
	"github.com/0x5457/book-rec/internal/config"
	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Params represents dependencies for embeddings components
type Params struct {
	fx.In

	Config *config.Config
	Logger zerolog.Logger
}

// NewEmbedder creates the embedder selected by embed.provider
func NewEmbedder(params Params) embeddings.Embedder {
	cfg := params.Config.Embed
	if cfg.Provider == config.EmbedProviderLocal {
		return embeddings.NewLocal(cfg.Dimension)
	}
	return embeddings.NewApiWithOptions(embeddings.ApiOptions{
		URL:             cfg.URL,
		Model:           cfg.Model,
		Timeout:         cfg.Timeout,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
		Logger:          params.Logger.With().Str("component", "embeddings").Logger(),
	})
}

// Module provides embeddings components
var Module = fx.Module("embeddings",
	fx.Provide(NewEmbedder),
)
