package embeddings

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"math"
	"strings"
	"unicode"
)

const DefaultLocalDimension = 384

// LocalEmbedder is an offline hashed bag-of-words embedder. Texts sharing
// words get similar vectors, which is enough to rank a small catalog
// without an embedding service.
type LocalEmbedder struct {
	dim int
}

func NewLocal(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = DefaultLocalDimension
	}
	return &LocalEmbedder{dim: dim}
}

func (e *LocalEmbedder) ModelName() string { return "local-bow" }

func (e *LocalEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vecs[i] = hashToVector(t, e.dim)
	}
	return vecs, nil
}

func (e *LocalEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return hashToVector(text, e.dim), nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hashToVector(s string, dim int) []float32 {
	vec := make([]float32, dim)
	for _, tok := range tokenize(s) {
		h := sha1.Sum([]byte(tok))
		// first 4 bytes pick the bucket, the fifth the sign
		bucket := binary.BigEndian.Uint32(h[:4]) % uint32(dim)
		if h[4]&1 == 0 {
			vec[bucket]++
		} else {
			vec[bucket]--
		}
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
