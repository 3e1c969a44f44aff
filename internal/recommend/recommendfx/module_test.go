package recommendfx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0x5457/book-rec/internal/catalog/catalogfx"
	"github.com/0x5457/book-rec/internal/config"
	"github.com/0x5457/book-rec/internal/embeddings/embeddingsfx"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/0x5457/book-rec/internal/recommend/recommendfx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Catalog.Path = ""
	cfg.Catalog.CoversDir = ""
	cfg.Embed.Provider = config.EmbedProviderLocal
	cfg.Embed.Dimension = 64
	return cfg
}

func TestRecommendModule(t *testing.T) {
	var engine *recommend.Engine
	app := fx.New(
		catalogfx.Module,
		embeddingsfx.Module,
		recommendfx.Module,
		fx.Supply(testConfig(t), zerolog.Nop()),
		fx.Populate(&engine),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	defer func() {
		require.NoError(t, app.Stop(ctx))
	}()

	res, err := engine.Explain(ctx, "I liked Dune", 3)
	require.NoError(t, err)
	assert.Equal(t, recommend.StrategyTitle, res.Strategy)
	assert.Len(t, res.Books, 3)
}

func TestRecommendModule_GenreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	require.NoError(t, os.WriteFile(path, []byte("space opera: [space]\n"), 0o644))
	cfg := testConfig(t)
	cfg.Genres.File = path

	var engine *recommend.Engine
	app := fx.New(
		catalogfx.Module,
		embeddingsfx.Module,
		recommendfx.Module,
		fx.Supply(cfg, zerolog.Nop()),
		fx.Populate(&engine),
	)
	require.NoError(t, app.Err())

	res, err := engine.Explain(context.Background(), "space", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"space opera"}, res.Genres)
	assert.Equal(t, recommend.StrategyEmbedding, res.Strategy)
}

func TestRecommendModule_BadGenreFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Genres.File = filepath.Join(t.TempDir(), "missing.yaml")

	app := fx.New(
		catalogfx.Module,
		embeddingsfx.Module,
		recommendfx.Module,
		fx.Supply(cfg, zerolog.Nop()),
		fx.Invoke(func(*recommend.Engine) {}),
	)
	assert.Error(t, app.Err())
}
