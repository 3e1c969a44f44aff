package embeddings

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse     = errors.New("embedding service returned no vectors")
	ErrDimensionMismatch = errors.New("embedding vectors have inconsistent dimensions")
)

// Embedder turns text into dense vectors. Implementations must be
// deterministic for a given model and safe for concurrent use.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	ModelName() string
}
