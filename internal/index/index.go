// Package index holds the normalized embedding matrix of the catalog and
// ranks it against query vectors by brute-force dot product.
package index

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/0x5457/book-rec/internal/metrics"
	"github.com/0x5457/book-rec/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options controls how the corpus is embedded.
type Options struct {
	BatchSize int
	Workers   int
}

// Matrix is one unit-length row per catalog position. Rows must not be modified.
type Matrix [][]float32

func (m Matrix) Row(i int) []float32 { return m[i] }

// Dimension is the vector length, or 0 for an empty matrix.
func (m Matrix) Dimension() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// CorpusIndex embeds the catalog on first use and caches the result for
// the life of the process.
type CorpusIndex struct {
	books    []models.Book
	embedder embeddings.Embedder
	opts     Options
	logger   zerolog.Logger

	mu     sync.Mutex
	built  bool
	matrix Matrix
}

func New(books []models.Book, embedder embeddings.Embedder, opts Options, logger zerolog.Logger) *CorpusIndex {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 64
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &CorpusIndex{books: books, embedder: embedder, opts: opts, logger: logger}
}

// Len is the number of rows, equal to the catalog size.
func (c *CorpusIndex) Len() int { return len(c.books) }

// Built reports whether the matrix has been computed.
func (c *CorpusIndex) Built() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built
}

// Matrix returns the cached matrix, building it on the first call.
// Concurrent callers wait for a single build; a failed build is retried
// by the next call.
func (c *CorpusIndex) Matrix(ctx context.Context) (Matrix, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.built {
		return c.matrix, nil
	}
	m, err := c.build(ctx)
	if err != nil {
		metrics.IndexBuilds.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("build corpus index: %w", err)
	}
	metrics.IndexBuilds.WithLabelValues("success").Inc()
	metrics.IndexRows.Set(float64(len(m)))
	c.matrix = m
	c.built = true
	return m, nil
}

func (c *CorpusIndex) build(ctx context.Context) (Matrix, error) {
	start := time.Now()
	texts := make([]string, len(c.books))
	for i, b := range c.books {
		texts[i] = b.Text()
	}

	m := make(Matrix, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for lo := 0; lo < len(texts); lo += c.opts.BatchSize {
		hi := min(lo+c.opts.BatchSize, len(texts))
		g.Go(func() error {
			vecs, err := c.embedder.EmbedTexts(gctx, texts[lo:hi])
			if err != nil {
				return err
			}
			if len(vecs) != hi-lo {
				return fmt.Errorf("%w: batch of %d texts got %d vectors", embeddings.ErrEmptyResponse, hi-lo, len(vecs))
			}
			for i, v := range vecs {
				m[lo+i] = Normalize(v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, row := range m[min(1, len(m)):] {
		if len(row) != len(m[0]) {
			return nil, embeddings.ErrDimensionMismatch
		}
	}

	elapsed := time.Since(start)
	metrics.IndexBuildDuration.Observe(elapsed.Seconds())
	c.logger.Info().
		Int("rows", len(m)).
		Str("model", c.embedder.ModelName()).
		Dur("elapsed", elapsed).
		Msg("corpus index built")
	return m, nil
}

// Rank scores every row against q and returns positions sorted by
// descending score. Ties keep catalog order. Positions in exclude are
// skipped.
func Rank(m Matrix, q []float32, exclude map[int]bool) []Scored {
	out := make([]Scored, 0, len(m))
	for i, row := range m {
		if exclude[i] {
			continue
		}
		out = append(out, Scored{Pos: i, Score: Dot(row, q)})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

// Scored is a catalog position with its similarity.
type Scored struct {
	Pos   int
	Score float32
}
