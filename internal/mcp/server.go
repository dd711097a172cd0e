// Package mcp implements the Model Context Protocol server, exposing the
// tools of every enabled extension to LLM clients over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/swissknife/internal/version"
)

// Name is advertised to clients during initialisation.
const Name = "swissknife"

// NewServer creates an mcp-go server with one handler per dispatcher tool.
// Each handler delegates to Dispatcher.Call, so the transport never sees a
// Go error from a tool.
func NewServer(d *Dispatcher) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version.Short(),
		server.WithToolCapabilities(true),
	)

	for _, t := range d.Tools() {
		name := t.Name
		s.AddTool(Definition(t), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Call(ctx, name, req.GetArguments()), nil
		})
	}
	return s
}

// SetLogger installs a text logger on stderr as the slog default.
// Stdout is reserved for JSON-RPC messages.
func SetLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(d *Dispatcher) error {
	s := NewServer(d)

	slog.Info("swissknife MCP server ready",
		"version", version.Short(),
		"transport", "stdio",
		"tools", len(d.Tools()),
	)

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}
