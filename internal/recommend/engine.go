// Package recommend decides, per query, how to rank the catalog.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/0x5457/book-rec/internal/genre"
	"github.com/0x5457/book-rec/internal/index"
	"github.com/0x5457/book-rec/internal/metrics"
	"github.com/0x5457/book-rec/internal/models"
	"github.com/0x5457/book-rec/internal/title"
	"github.com/rs/zerolog"
)

const DefaultK = 5

type Strategy string

const (
	StrategyNone      Strategy = "none"
	StrategyTitle     Strategy = "title"
	StrategyGenre     Strategy = "genre"
	StrategyHybrid    Strategy = "hybrid"
	StrategyEmbedding Strategy = "embedding"
)

// Result is a recommendation together with how it was produced.
type Result struct {
	Books      []models.Book `json:"results"`
	Strategy   Strategy      `json:"strategy"`
	Genres     []string      `json:"genres,omitempty"`
	TitleMatch *models.Book  `json:"title_match,omitempty"`
}

// Engine is safe for concurrent use. The only mutable state is the
// corpus index, which guards its own build.
type Engine struct {
	books    []models.Book
	index    *index.CorpusIndex
	embedder embeddings.Embedder
	detector *genre.Detector
	titles   *title.Matcher
	logger   zerolog.Logger
}

func NewEngine(
	books []models.Book,
	idx *index.CorpusIndex,
	embedder embeddings.Embedder,
	detector *genre.Detector,
	titles *title.Matcher,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		books:    books,
		index:    idx,
		embedder: embedder,
		detector: detector,
		titles:   titles,
		logger:   logger,
	}
}

// Recommend returns up to k books for query.
func (e *Engine) Recommend(ctx context.Context, query string, k int) ([]models.Book, error) {
	res, err := e.Explain(ctx, query, k)
	if err != nil {
		return nil, err
	}
	return res.Books, nil
}

// Explain is Recommend plus the strategy and signals that were used.
//
// Strategies are tried in order:
//   - title: the query names a catalog title; rank the rest of the catalog
//     by similarity to that title's row.
//   - genre: the query names genres and at least k books carry one of
//     them; return the first k such books by title.
//   - hybrid: fewer than k books carry a detected genre; return them all,
//     then fill with the closest other books to the query embedding.
//   - embedding: rank the catalog by similarity to the query embedding.
func (e *Engine) Explain(ctx context.Context, query string, k int) (Result, error) {
	start := time.Now()
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		metrics.RecommendRequests.WithLabelValues(string(StrategyNone)).Inc()
		return Result{Books: []models.Book{}, Strategy: StrategyNone}, nil
	}

	res, err := e.explain(ctx, q, k)
	if err != nil {
		metrics.RecommendErrors.Inc()
		e.logger.Error().Err(err).Str("query", q).Int("k", k).Msg("recommendation failed")
		return Result{}, err
	}

	elapsed := time.Since(start)
	metrics.RecommendRequests.WithLabelValues(string(res.Strategy)).Inc()
	metrics.RecommendDuration.WithLabelValues(string(res.Strategy)).Observe(elapsed.Seconds())
	e.logger.Debug().
		Str("query", q).
		Int("k", k).
		Str("strategy", string(res.Strategy)).
		Strs("genres", res.Genres).
		Int("results", len(res.Books)).
		Dur("elapsed", elapsed).
		Msg("recommendation served")
	return res, nil
}

func (e *Engine) explain(ctx context.Context, q string, k int) (Result, error) {
	if pos, ok := e.titles.Find(q); ok {
		books, err := e.byTitle(ctx, pos, k)
		if err != nil {
			return Result{}, err
		}
		matched := e.books[pos]
		return Result{Books: books, Strategy: StrategyTitle, TitleMatch: &matched}, nil
	}

	detected := e.detector.Detect(q)
	if len(detected) > 0 {
		var matches []int
		for i, b := range e.books {
			if detected.MatchesAny(b.Genres) {
				matches = append(matches, i)
			}
		}
		if len(matches) >= k {
			return Result{Books: e.firstByTitle(matches, k), Strategy: StrategyGenre, Genres: detected.Sorted()}, nil
		}
		if len(matches) > 0 {
			books, err := e.fillByQuery(ctx, q, matches, k)
			if err != nil {
				return Result{}, err
			}
			return Result{Books: books, Strategy: StrategyHybrid, Genres: detected.Sorted()}, nil
		}
	}

	books, err := e.fillByQuery(ctx, q, nil, k)
	if err != nil {
		return Result{}, err
	}
	return Result{Books: books, Strategy: StrategyEmbedding, Genres: detected.Sorted()}, nil
}

func (e *Engine) byTitle(ctx context.Context, pos, k int) ([]models.Book, error) {
	m, err := e.index.Matrix(ctx)
	if err != nil {
		return nil, err
	}
	ranked := index.Rank(m, m.Row(pos), map[int]bool{pos: true})
	return e.take(nil, ranked, k), nil
}

func (e *Engine) firstByTitle(matches []int, k int) []models.Book {
	books := make([]models.Book, len(matches))
	for i, pos := range matches {
		books[i] = e.books[pos]
	}
	sort.SliceStable(books, func(a, b int) bool { return books[a].Title < books[b].Title })
	return books[:k]
}

// fillByQuery returns the books at pinned positions followed by the books
// closest to the query embedding, k in total.
func (e *Engine) fillByQuery(ctx context.Context, q string, pinned []int, k int) ([]models.Book, error) {
	m, err := e.index.Matrix(ctx)
	if err != nil {
		return nil, err
	}
	vec, err := e.embedder.EmbedQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if d := m.Dimension(); d > 0 && len(vec) != d {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", embeddings.ErrDimensionMismatch, len(vec), d)
	}

	exclude := make(map[int]bool, len(pinned))
	out := make([]models.Book, 0, k)
	for _, pos := range pinned {
		exclude[pos] = true
		out = append(out, e.books[pos])
	}
	ranked := index.Rank(m, index.NormalizeEpsilon(vec), exclude)
	return e.take(out, ranked, k), nil
}

func (e *Engine) take(out []models.Book, ranked []index.Scored, k int) []models.Book {
	if out == nil {
		out = make([]models.Book, 0, min(k, len(ranked)))
	}
	for _, s := range ranked {
		if len(out) >= k {
			break
		}
		out = append(out, e.books[s.Pos])
	}
	return out
}

// Warm builds the corpus index ahead of the first request.
func (e *Engine) Warm(ctx context.Context) error {
	_, err := e.index.Matrix(ctx)
	return err
}

// Detect exposes the genre detector for callers that only need the signal.
func (e *Engine) Detect(query string) []string {
	return e.detector.Detect(query).Sorted()
}
