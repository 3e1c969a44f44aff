// Package catalog loads the immutable book list the recommender ranks.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/0x5457/book-rec/internal/models"
	"github.com/rs/zerolog"
)

const (
	SourceBuiltin = "builtin"

	DefaultCoversURLPrefix = "/static/covers"

	placeholderTitle       = "Unknown Title"
	placeholderAuthor      = "Unknown Author"
	placeholderDescription = "No description available"
)

var ErrUnsupportedSource = errors.New("unsupported catalog source")

// Options controls where the catalog is read from and how covers are resolved.
type Options struct {
	Path            string
	CoversDir       string
	CoversURLPrefix string
}

// Catalog is a read-only, ordered list of books.
type Catalog struct {
	books    []models.Book
	source   string
	fallback bool
}

// New wraps an already loaded book list.
func New(books []models.Book, source string) *Catalog {
	return &Catalog{books: books, source: source}
}

// Load reads the catalog described by opts. It never fails: any error while
// reading the source is logged and the built-in catalog is used instead.
func Load(ctx context.Context, opts Options, logger zerolog.Logger) *Catalog {
	books, err := read(ctx, opts.Path)
	c := &Catalog{books: books, source: opts.Path}
	if err != nil {
		logger.Warn().Err(err).Str("path", opts.Path).Msg("catalog source unavailable, using built-in books")
		c = &Catalog{books: Builtin(), source: SourceBuiltin, fallback: true}
	} else if opts.Path == "" {
		c.source = SourceBuiltin
	}
	c.assignCovers(opts)
	logger.Info().Str("source", c.source).Int("books", len(c.books)).Msg("catalog loaded")
	return c
}

func read(ctx context.Context, path string) ([]models.Book, error) {
	if path == "" {
		return Builtin(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		return readSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
}

func (c *Catalog) assignCovers(opts Options) {
	if opts.CoversDir == "" {
		return
	}
	if _, err := os.Stat(opts.CoversDir); err != nil {
		return
	}
	prefix := strings.TrimRight(opts.CoversURLPrefix, "/")
	if prefix == "" {
		prefix = DefaultCoversURLPrefix
	}
	for i := range c.books {
		if c.books[i].Cover == "" {
			c.books[i].Cover = prefix + "/" + strconv.Itoa(c.books[i].ID) + ".jpg"
		}
	}
}

// Books returns a copy of the catalog in load order.
func (c *Catalog) Books() []models.Book {
	out := make([]models.Book, len(c.books))
	copy(out, c.books)
	return out
}

func (c *Catalog) Len() int { return len(c.books) }

// At returns the book at catalog position i (0-based).
func (c *Catalog) At(i int) models.Book { return c.books[i] }

func (c *Catalog) Source() string { return c.source }

// Fallback reports whether the built-in catalog replaced a failed source.
func (c *Catalog) Fallback() bool { return c.fallback }

// Genres lists every distinct genre in the catalog, sorted.
func (c *Catalog) Genres() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range c.books {
		for _, g := range b.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// ByGenre returns the books tagged with genre, compared case-insensitively,
// in catalog order. An empty genre returns every book.
func (c *Catalog) ByGenre(genre string) []models.Book {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return c.Books()
	}
	out := make([]models.Book, 0)
	for _, b := range c.books {
		for _, g := range b.Genres {
			if strings.EqualFold(g, genre) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// splitGenres parses a comma separated genre cell.
func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.EqualFold(p, "nan") {
			continue
		}
		genres = append(genres, p)
	}
	return genres
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func newBook(id int, title, author, description, genres, cover string) models.Book {
	return models.Book{
		ID:          id,
		Title:       orDefault(title, placeholderTitle),
		Author:      orDefault(author, placeholderAuthor),
		Description: orDefault(description, placeholderDescription),
		Genres:      splitGenres(genres),
		Cover:       strings.TrimSpace(cover),
	}
}
