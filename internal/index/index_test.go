package index_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/0x5457/book-rec/internal/index"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder wraps an embedder and counts EmbedTexts calls.
type countingEmbedder struct {
	embeddings.Embedder
	calls atomic.Int32
	fail  atomic.Bool
}

func (c *countingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls.Add(1)
	if c.fail.Load() {
		return nil, errors.New("embedding service down")
	}
	return c.Embedder.EmbedTexts(ctx, texts)
}

func TestCorpusIndex_RowsAreUnitLength(t *testing.T) {
	books := catalog.Builtin()
	idx := index.New(books, embeddings.NewLocal(64), index.Options{BatchSize: 5, Workers: 3}, zerolog.Nop())

	m, err := idx.Matrix(context.Background())
	require.NoError(t, err)
	require.Len(t, m, len(books))
	assert.Equal(t, 64, m.Dimension())
	for i, row := range m {
		var n float64
		for _, v := range row {
			n += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(n), 1e-5, "row %d", i)
	}
}

func TestCorpusIndex_RowOrderMatchesCatalog(t *testing.T) {
	books := catalog.Builtin()
	emb := embeddings.NewLocal(64)
	idx := index.New(books, emb, index.Options{BatchSize: 2, Workers: 4}, zerolog.Nop())

	m, err := idx.Matrix(context.Background())
	require.NoError(t, err)
	for i, b := range books {
		v, err := emb.EmbedQuery(context.Background(), b.Text())
		require.NoError(t, err)
		assert.Equal(t, index.Normalize(v), m.Row(i))
	}
}

func TestCorpusIndex_BuildsOnce(t *testing.T) {
	emb := &countingEmbedder{Embedder: embeddings.NewLocal(16)}
	idx := index.New(catalog.Builtin(), emb, index.Options{BatchSize: 100}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := idx.Matrix(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	first, err := idx.Matrix(context.Background())
	require.NoError(t, err)
	second, err := idx.Matrix(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), emb.calls.Load())
	assert.True(t, idx.Built())
}

func TestCorpusIndex_FailedBuildIsRetried(t *testing.T) {
	emb := &countingEmbedder{Embedder: embeddings.NewLocal(16)}
	emb.fail.Store(true)
	idx := index.New(catalog.Builtin(), emb, index.Options{BatchSize: 100}, zerolog.Nop())

	_, err := idx.Matrix(context.Background())
	require.Error(t, err)
	assert.False(t, idx.Built())

	emb.fail.Store(false)
	m, err := idx.Matrix(context.Background())
	require.NoError(t, err)
	assert.Len(t, m, 12)
}

func TestCorpusIndex_Empty(t *testing.T) {
	idx := index.New(nil, embeddings.NewLocal(16), index.Options{}, zerolog.Nop())
	m, err := idx.Matrix(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.Equal(t, 0, m.Dimension())
}

func TestNormalize(t *testing.T) {
	u := index.Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, u[0], 1e-6)
	assert.InDelta(t, 0.8, u[1], 1e-6)
	assert.Equal(t, []float32{0, 0}, index.Normalize([]float32{0, 0}))
	assert.Equal(t, []float32{0, 0}, index.NormalizeEpsilon([]float32{0, 0}))

	v := index.NormalizeEpsilon([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
}

func TestRank(t *testing.T) {
	m := index.Matrix{{1, 0}, {0, 1}, {1, 0}, {0.6, 0.8}}
	got := index.Rank(m, []float32{1, 0}, map[int]bool{0: true})
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Pos)
	assert.Equal(t, 3, got[1].Pos)
	assert.Equal(t, 1, got[2].Pos)
	assert.InDelta(t, 0.6, got[1].Score, 1e-6)
}

func TestRank_TiesKeepCatalogOrder(t *testing.T) {
	m := index.Matrix{{0, 1}, {1, 0}, {0, 1}, {1, 0}}
	got := index.Rank(m, []float32{1, 0}, nil)

	positions := make([]int, len(got))
	for i, s := range got {
		positions[i] = s.Pos
	}
	assert.Equal(t, []int{1, 3, 0, 2}, positions)
	assert.Equal(t, got[0].Score, got[1].Score)
	assert.Equal(t, got[2].Score, got[3].Score)
}
