package commands

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/0x5457/book-rec/internal/app/appfx"
	appmcp "github.com/0x5457/book-rec/internal/mcp"
	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	transportStdio  = "stdio"
	transportHTTP   = "http"
	transportInproc = "inproc"
)

// NewMCPClientCommand creates commands for connecting to and interacting with MCP servers
func NewMCPClientCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-client",
		Short: "MCP client commands",
		Long:  "Commands for connecting to and interacting with MCP servers",
	}

	cmd.AddCommand(
		newMCPCallCommand(),
		newMCPListToolsCommand(),
	)

	return cmd
}

type clientFlags struct {
	transport string
	address   string
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().
		StringVarP(&f.transport, "transport", "t", transportStdio, "transport (stdio, http, inproc)")
	cmd.Flags().
		StringVarP(&f.address, "address", "a", "", "server URL for http, ignored for stdio/inproc")
}

// parseToolArgs turns key=value pairs into tool arguments.
// Numbers and booleans are converted, everything else stays a string.
func parseToolArgs(pairs []string) (map[string]any, error) {
	toolArgs := make(map[string]any, len(pairs))
	for _, arg := range pairs {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument format: %s (expected key=value)", arg)
		}
		if val, err := strconv.Atoi(value); err == nil {
			toolArgs[key] = val
		} else if val, err := strconv.ParseBool(value); err == nil {
			toolArgs[key] = val
		} else {
			toolArgs[key] = value
		}
	}
	return toolArgs, nil
}

func newMCPCallCommand() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "call <tool_name> [args...]",
		Short: "Call a specific MCP tool",
		Long: `Call a specific MCP tool with arguments.
Arguments should be provided as key=value pairs.

Example:
  book-rec mcp-client call recommend_books query="space adventure" k=3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs, err := parseToolArgs(args[1:])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			client, closeFn, err := createMCPClient(ctx, flags.transport, flags.address)
			if err != nil {
				return fmt.Errorf("create MCP client failed: %w", err)
			}
			defer closeFn()

			result, err := client.Call(ctx, args[0], toolArgs)
			if err != nil {
				return fmt.Errorf("call tool failed: %w", err)
			}
			return printToolResult(cmd, result)
		},
	}

	flags.register(cmd)
	return cmd
}

func printToolResult(cmd *cobra.Command, result *mcp.CallToolResult) error {
	out := cmd.OutOrStdout()
	if result.IsError {
		for _, c := range result.Content {
			if tc, ok := c.(mcp.TextContent); ok {
				return fmt.Errorf("tool error: %s", tc.Text)
			}
		}
		return fmt.Errorf("tool returned an error")
	}
	if result.StructuredContent != nil {
		data, err := json.MarshalIndent(result.StructuredContent, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			_, _ = fmt.Fprintln(out, tc.Text)
		}
	}
	return nil
}

func newMCPListToolsCommand() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "list-tools",
		Short: "List available MCP tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			client, closeFn, err := createMCPClient(ctx, flags.transport, flags.address)
			if err != nil {
				return fmt.Errorf("create MCP client failed: %w", err)
			}
			defer closeFn()

			tools, err := client.ListTools(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tools: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tools) == 0 {
				_, _ = fmt.Fprintln(out, "No tools available")
				return nil
			}

			_, _ = fmt.Fprintf(out, "Available MCP tools (%d):\n\n", len(tools))
			for i, tool := range tools {
				_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, tool.Name)
				if tool.Description != "" {
					_, _ = fmt.Fprintf(out, "   Description: %s\n", tool.Description)
				}
				names := make([]string, 0, len(tool.InputSchema.Properties))
				for name := range tool.InputSchema.Properties {
					names = append(names, name)
				}
				slices.Sort(names)
				if len(names) > 0 {
					_, _ = fmt.Fprintf(out, "   Parameters:\n")
				}
				for _, name := range names {
					required := ""
					if slices.Contains(tool.InputSchema.Required, name) {
						required = " (required)"
					}
					desc := ""
					if propMap, ok := tool.InputSchema.Properties[name].(map[string]any); ok {
						desc, _ = propMap["description"].(string)
					}
					if desc != "" {
						_, _ = fmt.Fprintf(out, "     - %s%s: %s\n", name, required, desc)
					} else {
						_, _ = fmt.Fprintf(out, "     - %s%s\n", name, required)
					}
				}
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// createMCPClient returns a connected client and a func releasing it
// together with anything started for it.
func createMCPClient(ctx context.Context, transport, address string) (*appmcp.Client, func(), error) {
	switch transport {
	case transportStdio:
		c, err := appmcp.NewStdioClient(ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case transportHTTP:
		if address == "" {
			address = "http://127.0.0.1:8080/mcp"
		}
		c, err := appmcp.NewHTTPClient(ctx, address)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case transportInproc:
		var s *server.MCPServer
		app := appfx.NewApp(fx.Populate(&s))
		if err := app.Start(ctx); err != nil {
			return nil, nil, fmt.Errorf("initialize components failed: %w", err)
		}
		c, err := appmcp.NewInProcessClient(ctx, s)
		if err != nil {
			_ = app.Stop(context.Background())
			return nil, nil, err
		}
		return c, func() {
			_ = c.Close()
			_ = app.Stop(context.Background())
		}, nil
	default:
		return nil, nil, fmt.Errorf(
			"unsupported transport: %s (supported: stdio, http, inproc)",
			transport,
		)
	}
}
