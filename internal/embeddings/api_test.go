package embeddings_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiEmbedder_EmbedTexts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Sentences []string `json:"sentences"`
			Model     string   `json:"model"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, embeddings.DefaultModel, req.Model)
		out := make([][]float32, len(req.Sentences))
		for i := range req.Sentences {
			out[i] = []float32{float32(i), 1}
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(ts.Close)

	e := embeddings.NewApi(ts.URL)
	assert.Equal(t, embeddings.DefaultModel, e.ModelName())

	vecs, err := e.EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0, 1}, {1, 1}}, vecs)

	q, err := e.EmbedQuery(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, q)
}

func TestApiEmbedder_CountMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	_, err := embeddings.NewApi(ts.URL).EmbedQuery(context.Background(), "a")
	require.ErrorIs(t, err, embeddings.ErrEmptyResponse)
}

func TestApiEmbedder_DimensionMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1,2],[1]]`))
	}))
	t.Cleanup(ts.Close)

	_, err := embeddings.NewApi(ts.URL).EmbedTexts(context.Background(), []string{"a", "b"})
	require.ErrorIs(t, err, embeddings.ErrDimensionMismatch)
}

func TestApiEmbedder_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	t.Cleanup(ts.Close)

	e := embeddings.NewApiWithOptions(embeddings.ApiOptions{
		URL:             ts.URL,
		Timeout:         time.Second,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
		Logger:          zerolog.Nop(),
	})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := e.EmbedQuery(ctx, "a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	}
	_, err := e.EmbedQuery(ctx, "a")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), calls.Load())
}

func TestApiEmbedder_EmptyInput(t *testing.T) {
	vecs, err := embeddings.NewApi("http://127.0.0.1:0").EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}
