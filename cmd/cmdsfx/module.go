package cmdsfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/0x5457/book-rec/internal/api"
	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/config"
	"github.com/0x5457/book-rec/internal/index"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// CommandRunner provides methods to run different application commands
type CommandRunner struct {
	config    *config.Config
	engine    *recommend.Engine
	catalog   *catalog.Catalog
	index     *index.CorpusIndex
	apiServer *api.Server
	mcpServer *server.MCPServer
	logger    zerolog.Logger
	out       io.Writer
}

// Params represents dependencies for command runner
type Params struct {
	fx.In

	Config    *config.Config
	Logger    zerolog.Logger
	Engine    *recommend.Engine  `optional:"true"`
	Catalog   *catalog.Catalog   `optional:"true"`
	Index     *index.CorpusIndex `optional:"true"`
	APIServer *api.Server        `optional:"true"`
	MCPServer *server.MCPServer  `optional:"true"`
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(params Params) *CommandRunner {
	return &CommandRunner{
		config:    params.Config,
		engine:    params.Engine,
		catalog:   params.Catalog,
		index:     params.Index,
		apiServer: params.APIServer,
		mcpServer: params.MCPServer,
		logger:    params.Logger,
		out:       os.Stdout,
	}
}

// SetOutput redirects command output, mainly for tests
func (r *CommandRunner) SetOutput(w io.Writer) { r.out = w }

// RunRecommend prints recommendations for a single query
func (r *CommandRunner) RunRecommend(ctx context.Context, query string, k int, explain, asJSON bool) error {
	if r.engine == nil {
		return fmt.Errorf("recommendation engine not available")
	}
	if k == 0 {
		k = r.config.Recommend.DefaultK
	}

	res, err := r.engine.Explain(ctx, query, k)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if explain {
			return enc.Encode(res)
		}
		return enc.Encode(map[string]any{"results": res.Books})
	}

	if explain {
		_, _ = fmt.Fprintf(r.out, "strategy: %s\n", res.Strategy)
		if len(res.Genres) > 0 {
			_, _ = fmt.Fprintf(r.out, "genres: %s\n", strings.Join(res.Genres, ", "))
		}
		if res.TitleMatch != nil {
			_, _ = fmt.Fprintf(r.out, "title match: %s\n", res.TitleMatch.Title)
		}
	}
	if len(res.Books) == 0 {
		_, _ = fmt.Fprintln(r.out, "no recommendations")
		return nil
	}
	for i, b := range res.Books {
		_, _ = fmt.Fprintf(r.out, "%d. %s by %s [%s]\n", i+1, b.Title, b.Author, strings.Join(b.Genres, ", "))
	}
	return nil
}

// RunGenres prints the genres detected in a query
func (r *CommandRunner) RunGenres(query string) error {
	if r.engine == nil {
		return fmt.Errorf("recommendation engine not available")
	}
	genres := r.engine.Detect(query)
	if len(genres) == 0 {
		_, _ = fmt.Fprintln(r.out, "no genres detected")
		return nil
	}
	for _, g := range genres {
		_, _ = fmt.Fprintln(r.out, g)
	}
	return nil
}

// RunCatalog prints a summary of the loaded catalog
func (r *CommandRunner) RunCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("catalog not available")
	}
	_, _ = fmt.Fprintf(r.out, "source: %s (fallback: %t)\n", r.catalog.Source(), r.catalog.Fallback())
	_, _ = fmt.Fprintf(r.out, "books: %d\n", r.catalog.Len())
	if r.index != nil {
		_, _ = fmt.Fprintf(r.out, "index: %d rows (built: %t)\n", r.index.Len(), r.index.Built())
	}
	_, _ = fmt.Fprintf(r.out, "genres: %s\n", strings.Join(r.catalog.Genres(), ", "))
	for _, b := range r.catalog.Books() {
		_, _ = fmt.Fprintf(r.out, "%4d  %s - %s\n", b.ID, b.Title, b.Author)
	}
	return nil
}

// RunServe serves the HTTP API until ctx is cancelled
func (r *CommandRunner) RunServe(ctx context.Context) error {
	if r.apiServer == nil {
		return fmt.Errorf("HTTP API not available")
	}

	srv := &http.Server{
		Addr:         r.config.Server.Addr,
		Handler:      r.apiServer.Handler(),
		ReadTimeout:  r.config.Server.ReadTimeout,
		WriteTimeout: r.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r.logger.Info().Msg("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// RunMCPServer executes the MCP server
func (r *CommandRunner) RunMCPServer(transport, address string) error {
	if r.mcpServer == nil {
		return fmt.Errorf("MCP server not available")
	}

	switch transport {
	case "stdio":
		return server.ServeStdio(r.mcpServer)
	case "http":
		// Streamable HTTP server on address, default ":8080" if empty
		addr := address
		if addr == "" {
			addr = ":8080"
		}
		r.logger.Info().Str("addr", addr).Msg("mcp streamable http server listening")
		httpSrv := server.NewStreamableHTTPServer(r.mcpServer)
		return httpSrv.Start(addr)
	case "sse":
		// SSE server exposes two endpoints; default base path "/mcp"
		addr := address
		if addr == "" {
			addr = ":8080"
		}
		r.logger.Info().Str("addr", addr).Msg("mcp sse server listening")
		sseSrv := server.NewSSEServer(r.mcpServer,
			server.WithBaseURL(""),
			server.WithStaticBasePath("/mcp"),
		)
		return sseSrv.Start(addr)
	default:
		return fmt.Errorf(
			"unsupported transport: %s (supported: stdio, http, sse)",
			transport,
		)
	}
}

// Module provides command runner
var Module = fx.Module("commands",
	fx.Provide(NewCommandRunner),
)
