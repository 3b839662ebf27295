// Package service wires protocol transport to domain handlers.
//
// It is the transport adapter layer: the package knows how to run MCP over
// stdio and delegates business meaning to the handlers in the domain package.
package service

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/threemachines/i-ching/internal/render"
	"github.com/threemachines/i-ching/internal/services/mcp/domain"
)

const (
	serverName = "iching"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// New builds an MCP server with every divination tool and resource
// registered against the given text source.
func New(source render.TextSource) (*mcp.Server, error) {
	if source == nil {
		return nil, fmt.Errorf("text source is required")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: "Cast and interpret I Ching readings. Readings accept sequence numbers, glyphs, six line values, or transitions like 32→34.",
	})

	mcp.AddTool(server, domain.CastTool(), domain.CastHandler(source))
	mcp.AddTool(server, domain.InterpretTool(), domain.InterpretHandler(source))
	mcp.AddTool(server, domain.LineOddsTool(), domain.LineOddsHandler())

	server.AddResourceTemplate(domain.HexagramResourceTemplate(), domain.HexagramResourceHandler(source))

	return server, nil
}

// Run serves MCP over stdio and blocks until context cancellation or
// transport shutdown.
func Run(ctx context.Context, source render.TextSource) error {
	server, err := New(source)
	if err != nil {
		return err
	}
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("run mcp server: %w", err)
	}
	return nil
}
