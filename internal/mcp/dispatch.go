// dispatch.go implements the tool dispatcher shared by the MCP server and
// the call command.
//
// Every tool call goes through Call: the name is looked up, arguments are
// checked against the tool's schema, the handler runs, and any error or
// panic becomes an error result. Callers never receive a Go error.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/log"
)

var (
	// ErrUnknownTool is returned for calls to a name no extension registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrDuplicateTool is returned when two extensions register the same name.
	ErrDuplicateTool = errors.New("tool already registered")
	// ErrToolPanic wraps a recovered handler panic.
	ErrToolPanic = errors.New("internal error")
)

// Source prefixes for audit log entries.
const (
	SourceMCP = "mcp"
	SourceCLI = "cli"
)

// Dispatcher routes tool calls to extension handlers.
// It is immutable after NewDispatcher and safe for concurrent calls.
type Dispatcher struct {
	extCtx extension.Context
	source string
	tools  map[string]extension.MCPTool
	order  []string
}

// NewDispatcher collects the MCP tools of every given extension.
// Source is recorded in the audit log ("mcp" or "cli").
func NewDispatcher(extCtx extension.Context, source string, exts []extension.Extension) (*Dispatcher, error) {
	d := &Dispatcher{
		extCtx: extCtx,
		source: source,
		tools:  make(map[string]extension.MCPTool),
	}
	for _, ext := range exts {
		for _, t := range ext.MCPTools() {
			if err := d.register(t); err != nil {
				return nil, fmt.Errorf("extension %s: %w", ext.Name(), err)
			}
		}
	}
	return d, nil
}

func (d *Dispatcher) register(t extension.MCPTool) error {
	if t.Name == "" || t.Handler == nil {
		return fmt.Errorf("tool %q: name and handler are required", t.Name)
	}
	if _, exists := d.tools[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
	}
	d.tools[t.Name] = t
	d.order = append(d.order, t.Name)
	return nil
}

// Tools returns every registered tool in registration order.
func (d *Dispatcher) Tools() []extension.MCPTool {
	out := make([]extension.MCPTool, len(d.order))
	for i, name := range d.order {
		out[i] = d.tools[name]
	}
	return out
}

// Call invokes a tool by name. The result is never nil; failures are
// reported as error results whose text starts with "Error: ".
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	t, ok := d.tools[name]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownTool, name)
		log.Event(d.source+":"+name, "call").Write(err)
		return errorResult(err)
	}

	l := log.Event(d.source+":"+name, t.Action)
	annotate(l, args)

	res, err := d.invoke(ctx, t, args)
	l.Write(err)
	if err != nil {
		slog.Debug("tool failed", "tool", name, "call", l.ID(), "error", err)
		return errorResult(err)
	}
	return res
}

// invoke validates and runs one handler, converting a panic into an error.
func (d *Dispatcher) invoke(ctx context.Context, t extension.MCPTool, raw map[string]any) (res *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool panicked", "tool", t.Name, "panic", r, "stack", string(debug.Stack()))
			res, err = nil, fmt.Errorf("%w: %s: %v", ErrToolPanic, t.Name, r)
		}
	}()

	args, err := t.Schema.Check(raw)
	if err != nil {
		return nil, err
	}

	res, err = t.Handler(ctx, d.extCtx, args)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = mcp.NewToolResultText("")
	}
	return res, nil
}

// annotate copies the identifying argument of a call into the audit entry.
func annotate(l *log.Builder, args map[string]any) {
	for _, key := range []string{"path", "url"} {
		if s, ok := args[key].(string); ok {
			l.Path(s)
			return
		}
	}
	if q, ok := args["query"].(string); ok {
		l.Detail("query", q)
	}
	if ps, ok := args["paths"].([]any); ok {
		l.Detail("count", len(ps))
	}
}

// errorResult renders err as an error-flagged result.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + err.Error())
}

// Text concatenates the text segments of a result, separated by blank lines.
func Text(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
