package mcp

import (
	"context"
	"fmt"

	"github.com/0x5457/book-rec/internal/models"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "book-rec/mcp"
	serverVersion = "0.1.0"
	defaultMaxK   = 50
)

// Recommender is the engine contract the tools depend on.
type Recommender interface {
	Explain(ctx context.Context, query string, k int) (recommend.Result, error)
	Detect(query string) []string
}

// Catalog is the read side of the catalog exposed by list_books.
type Catalog interface {
	ByGenre(genre string) []models.Book
	Genres() []string
	Source() string
}

// Options bounds the k accepted by recommend_books.
// Zero values fall back to recommend.DefaultK and 50.
type Options struct {
	DefaultK int
	MaxK     int
}

// Server holds the dependencies shared by tool handlers
type Server struct {
	engine  Recommender
	catalog Catalog
	opts    Options
}

// New returns an MCP server exposing recommendation tools with default limits.
// Handlers report a tool error when a dependency is nil.
func New(engine Recommender, catalog Catalog) *server.MCPServer {
	return NewWithOptions(engine, catalog, Options{})
}

// NewWithOptions is New with explicit k limits.
func NewWithOptions(engine Recommender, catalog Catalog, opts Options) *server.MCPServer {
	srv := &Server{engine: engine, catalog: catalog, opts: opts}
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	s.AddTool(newRecommendBooksTool(), srv.handleRecommendBooks)
	s.AddTool(newDetectGenresTool(), srv.handleDetectGenres)
	s.AddTool(newListBooksTool(), srv.handleListBooks)

	return s
}

// Tool definitions
func newRecommendBooksTool() mcp.Tool {
	return mcp.NewTool(
		"recommend_books",
		mcp.WithDescription("Recommend books from the catalog for a free-text request, e.g. 'I liked Dune' or 'romance'"),
		mcp.WithString("query", mcp.Description("What the reader is looking for"), mcp.Required()),
		mcp.WithNumber("k", mcp.Description("Number of books to return"), mcp.DefaultNumber(recommend.DefaultK)),
		mcp.WithBoolean(
			"explain",
			mcp.Description("Include the strategy and detected genres"),
			mcp.DefaultBool(false),
		),
	)
}

func newDetectGenresTool() mcp.Tool {
	return mcp.NewTool(
		"detect_genres",
		mcp.WithDescription("Detect canonical genre tags mentioned in a query"),
		mcp.WithString("query", mcp.Description("Free-text query"), mcp.Required()),
	)
}

func newListBooksTool() mcp.Tool {
	return mcp.NewTool(
		"list_books",
		mcp.WithDescription("List the books in the catalog and their genres"),
		mcp.WithString("genre", mcp.Description("Only books with this genre (case-insensitive)")),
	)
}

func (srv *Server) defaultK() int {
	if srv.opts.DefaultK > 0 {
		return srv.opts.DefaultK
	}
	return recommend.DefaultK
}

func (srv *Server) clampK(k int) int {
	maxK := srv.opts.MaxK
	if maxK <= 0 {
		maxK = defaultMaxK
	}
	return min(k, maxK)
}

// Handlers
func (srv *Server) handleRecommendBooks(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if srv.engine == nil {
		return mcp.NewToolResultError("recommendation engine not initialized"), nil
	}

	k := srv.clampK(req.GetInt("k", srv.defaultK()))
	res, err := srv.engine.Explain(ctx, query, k)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommend failed: %v", err)), nil
	}
	if !req.GetBool("explain", false) {
		return mcp.NewToolResultStructuredOnly(map[string]any{"results": res.Books}), nil
	}
	return mcp.NewToolResultStructuredOnly(res), nil
}

func (srv *Server) handleDetectGenres(
	_ context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if srv.engine == nil {
		return mcp.NewToolResultError("recommendation engine not initialized"), nil
	}
	return mcp.NewToolResultStructuredOnly(map[string]any{
		"query":  query,
		"genres": srv.engine.Detect(query),
	}), nil
}

func (srv *Server) handleListBooks(
	_ context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	if srv.catalog == nil {
		return mcp.NewToolResultError("catalog not initialized"), nil
	}
	books := srv.catalog.ByGenre(req.GetString("genre", ""))
	return mcp.NewToolResultStructuredOnly(map[string]any{
		"source": srv.catalog.Source(),
		"count":  len(books),
		"books":  books,
	}), nil
}
