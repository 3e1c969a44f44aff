package recommendfx

import (
	"context"
	"fmt"

	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/config"
	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/0x5457/book-rec/internal/genre"
	"github.com/0x5457/book-rec/internal/index"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/0x5457/book-rec/internal/title"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// NewDetector uses genres.file when set, otherwise the built-in table
func NewDetector(cfg *config.Config) (*genre.Detector, error) {
	if cfg.Genres.File == "" {
		return genre.NewDetector(genre.DefaultTable()), nil
	}
	table, err := genre.LoadTable(cfg.Genres.File)
	if err != nil {
		return nil, fmt.Errorf("load genre table: %w", err)
	}
	return genre.NewDetector(table), nil
}

// NewMatcher indexes catalog titles
func NewMatcher(c *catalog.Catalog) *title.Matcher {
	return title.NewMatcher(c.Books())
}

// IndexParams represents dependencies for the corpus index
type IndexParams struct {
	fx.In

	Catalog  *catalog.Catalog
	Embedder embeddings.Embedder
	Config   *config.Config
	Logger   zerolog.Logger
}

// NewCorpusIndex creates the process-wide corpus index; it is built lazily
func NewCorpusIndex(params IndexParams) *index.CorpusIndex {
	return index.New(
		params.Catalog.Books(),
		params.Embedder,
		index.Options{
			BatchSize: params.Config.Embed.BatchSize,
			Workers:   params.Config.Embed.Workers,
		},
		params.Logger.With().Str("component", "index").Logger(),
	)
}

// EngineParams represents dependencies for the recommendation engine
type EngineParams struct {
	fx.In

	Catalog  *catalog.Catalog
	Index    *index.CorpusIndex
	Embedder embeddings.Embedder
	Detector *genre.Detector
	Matcher  *title.Matcher
	Logger   zerolog.Logger
}

// NewEngine wires the recommendation engine
func NewEngine(params EngineParams) *recommend.Engine {
	return recommend.NewEngine(
		params.Catalog.Books(),
		params.Index,
		params.Embedder,
		params.Detector,
		params.Matcher,
		params.Logger.With().Str("component", "recommend").Logger(),
	)
}

// Module provides the recommendation engine and its parts
var Module = fx.Module("recommend",
	fx.Provide(
		NewDetector,
		NewMatcher,
		NewCorpusIndex,
		NewEngine,
	),
)

// WarmupParams represents dependencies for the startup index build
type WarmupParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Engine    *recommend.Engine
	Logger    zerolog.Logger
}

// RegisterWarmup builds the corpus index in the background after start
// when recommend.warm_index is set.
func RegisterWarmup(params WarmupParams) {
	if !params.Config.Recommend.WarmIndex {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := params.Engine.Warm(ctx); err != nil {
					params.Logger.Warn().Err(err).Msg("index warmup failed, will retry on first request")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// Warmup registers the optional startup index build
var Warmup = fx.Invoke(RegisterWarmup)
