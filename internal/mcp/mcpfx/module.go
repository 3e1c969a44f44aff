package mcpfx

import (
	"github.com/0x5457/book-rec/internal/catalog"
	"github.com/0x5457/book-rec/internal/config"
	appmcp "github.com/0x5457/book-rec/internal/mcp"
	"github.com/0x5457/book-rec/internal/recommend"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"
)

// Params represents dependencies for MCP server
type Params struct {
	fx.In

	Engine  *recommend.Engine
	Catalog *catalog.Catalog
	Config  *config.Config
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(params Params) *server.MCPServer {
	return appmcp.NewWithOptions(params.Engine, params.Catalog, appmcp.Options{
		DefaultK: params.Config.Recommend.DefaultK,
		MaxK:     params.Config.Recommend.MaxK,
	})
}

// Module provides MCP server components
var Module = fx.Module("mcp",
	fx.Provide(NewMCPServer),
)
