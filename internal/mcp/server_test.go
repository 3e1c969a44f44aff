package mcp

import (
	"context"
	"testing"

	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/embeddings"
	"github.com/0x5457/book-rec/internal/genre"
	"github.com/0x5457/book-rec/internal/index"
	"github.com/0x5457/book-rec/internal/models"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/0x5457/book-rec/internal/title"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	books := catalog.Builtin()
	emb := embeddings.NewLocal(64)
	engine := recommend.NewEngine(
		books,
		index.New(books, emb, index.Options{}, zerolog.Nop()),
		emb,
		genre.NewDetector(genre.DefaultTable()),
		title.NewMatcher(books),
		zerolog.Nop(),
	)
	return &Server{engine: engine, catalog: catalog.New(books, catalog.SourceBuiltin)}
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestNew(t *testing.T) {
	server := New(nil, nil)
	assert.NotNil(t, server)
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		toolFunc func() mcp.Tool
		toolName string
	}{
		{"recommend_books", newRecommendBooksTool, "recommend_books"},
		{"detect_genres", newDetectGenresTool, "detect_genres"},
		{"list_books", newListBooksTool, "list_books"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := tt.toolFunc()
			assert.Equal(t, tt.toolName, tool.Name)
			assert.NotEmpty(t, tool.Description)
		})
	}
}

func TestRecommendBooksTool(t *testing.T) {
	tool := newRecommendBooksTool()
	assert.Contains(t, tool.Description, "Recommend books")

	// check required params
	assert.Contains(t, tool.InputSchema.Required, "query")
	queryProp := tool.InputSchema.Properties["query"].(map[string]interface{})
	assert.Equal(t, "string", queryProp["type"])
	assert.Contains(t, tool.InputSchema.Properties, "k")
}

func TestHandleRecommendBooksError(t *testing.T) {
	ctx := context.Background()

	// missing required params
	srv := newTestServer()
	result, err := srv.handleRecommendBooks(ctx, callRequest("recommend_books", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.NotEmpty(t, result.Content)

	// no engine
	srv = &Server{}
	result, err = srv.handleRecommendBooks(ctx, callRequest("recommend_books", map[string]any{"query": "dune"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleRecommendBooks(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer()

	result, err := srv.handleRecommendBooks(ctx, callRequest("recommend_books", map[string]any{
		"query": "I liked Dune",
		"k":     3,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	content := result.StructuredContent.(map[string]any)
	books := content["results"].([]models.Book)
	assert.Len(t, books, 3)

	result, err = srv.handleRecommendBooks(ctx, callRequest("recommend_books", map[string]any{
		"query":   "adventure",
		"k":       2,
		"explain": true,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	res := result.StructuredContent.(recommend.Result)
	assert.Equal(t, recommend.StrategyGenre, res.Strategy)
	assert.Equal(t, []string{"adventure"}, res.Genres)
	assert.Len(t, res.Books, 2)
}

func TestHandleRecommendBooksLimits(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer()
	srv.opts = Options{DefaultK: 4, MaxK: 2}

	result, err := srv.handleRecommendBooks(ctx, callRequest("recommend_books", map[string]any{
		"query": "I liked Dune",
		"k":     10,
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	books := result.StructuredContent.(map[string]any)["results"].([]models.Book)
	assert.Len(t, books, 2)

	srv.opts = Options{DefaultK: 4, MaxK: 20}
	result, err = srv.handleRecommendBooks(ctx, callRequest("recommend_books", map[string]any{
		"query": "I liked Dune",
	}))
	require.NoError(t, err)
	books = result.StructuredContent.(map[string]any)["results"].([]models.Book)
	assert.Len(t, books, 4)

	// zero options keep the built-in limits
	srv.opts = Options{}
	assert.Equal(t, recommend.DefaultK, srv.defaultK())
	assert.Equal(t, defaultMaxK, srv.clampK(500))
	assert.Equal(t, 7, srv.clampK(7))
}

func TestHandleDetectGenres(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer()

	result, err := srv.handleDetectGenres(ctx, callRequest("detect_genres", map[string]any{"query": "a ya dystopian novel"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	content := result.StructuredContent.(map[string]any)
	assert.Equal(t, []string{"dystopia", "young adult"}, content["genres"])

	result, err = srv.handleDetectGenres(ctx, callRequest("detect_genres", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListBooks(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer()

	result, err := srv.handleListBooks(ctx, callRequest("list_books", map[string]any{}))
	require.NoError(t, err)
	content := result.StructuredContent.(map[string]any)
	assert.Equal(t, 12, content["count"])

	result, err = srv.handleListBooks(ctx, callRequest("list_books", map[string]any{"genre": "cyberpunk"}))
	require.NoError(t, err)
	content = result.StructuredContent.(map[string]any)
	books := content["books"].([]models.Book)
	require.Len(t, books, 1)
	assert.Equal(t, "Neuromancer", books[0].Title)

	result, err = (&Server{}).handleListBooks(ctx, callRequest("list_books", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
