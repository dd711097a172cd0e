// mcp.go defines types for MCP tool registration by extensions.
//
// Separated from extension.go to isolate MCP-specific concerns. Not all
// extensions need MCP tools - some only provide CLI commands.
//
// MCPTool pairs a tool's argument contract with its handler. The dispatcher
// checks arguments against Schema before the handler runs, so handlers read
// already-typed values from validate.Args.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/swissknife/internal/validate"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Name        string
	Description string
	Schema      validate.Schema
	Action      string // audit log verb: read, write, search, fetch...
	Handler     MCPHandler
}

// MCPHandler processes a validated tool call.
// The Context provides access to the vault roots and configuration.
// A returned error is reported to the caller as an error result.
type MCPHandler func(ctx context.Context, extCtx Context, args validate.Args) (*mcp.CallToolResult, error)
