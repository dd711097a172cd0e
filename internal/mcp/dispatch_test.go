package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/validate"
)

// fakeExt contributes a fixed set of tools.
type fakeExt struct {
	name  string
	tools []extension.MCPTool
}

func (e fakeExt) Name() string                  { return e.name }
func (e fakeExt) Commands() []*cobra.Command    { return nil }
func (e fakeExt) MCPTools() []extension.MCPTool { return e.tools }

func echoTool() extension.MCPTool {
	return extension.MCPTool{
		Name:        "echo",
		Description: "Echo the query",
		Action:      "read",
		Schema: validate.Schema{Fields: []validate.Field{
			{Name: "query", Kind: validate.String, Required: true, MinLen: 1, MinLenMessage: "Query cannot be empty"},
			{Name: "tags", Kind: validate.StringArray},
		}},
		Handler: func(_ context.Context, _ extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(args.String("query") + strings.Join(args.Strings("tags"), ",")), nil
		},
	}
}

func newDispatcher(t *testing.T, tools ...extension.MCPTool) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(extension.NewContext(nil, nil), SourceCLI, []extension.Extension{fakeExt{name: "fake", tools: tools}})
	require.NoError(t, err)
	return d
}

func TestDispatcher_Call(t *testing.T) {
	d := newDispatcher(t,
		echoTool(),
		extension.MCPTool{
			Name: "fail",
			Handler: func(context.Context, extension.Context, validate.Args) (*mcp.CallToolResult, error) {
				return nil, errors.New("boom")
			},
		},
		extension.MCPTool{
			Name: "panic",
			Handler: func(context.Context, extension.Context, validate.Args) (*mcp.CallToolResult, error) {
				panic("kaboom")
			},
		},
		extension.MCPTool{
			Name: "nil",
			Handler: func(context.Context, extension.Context, validate.Args) (*mcp.CallToolResult, error) {
				return nil, nil
			},
		},
	)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		want    string
		isError bool
	}{
		{"success", "echo", map[string]any{"query": "hi"}, "hi", false},
		{"array arg", "echo", map[string]any{"query": "hi", "tags": []any{"a", "b"}}, "hia,b", false},
		{"unknown tool", "nope", nil, "Error: unknown tool: nope", true},
		{"missing arg", "echo", map[string]any{}, "Error: invalid arguments: query: required", true},
		{"empty query", "echo", map[string]any{"query": ""}, "Error: invalid arguments: query: Query cannot be empty", true},
		{"wrong type", "echo", map[string]any{"query": 3.0}, "Error: invalid arguments: query: expected string, got number", true},
		{"handler error", "fail", nil, "Error: boom", true},
		{"handler panic", "panic", nil, "Error: internal error: panic: kaboom", true},
		{"nil result", "nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Call(context.Background(), tt.tool, tt.args)
			require.NotNil(t, res)
			assert.Equal(t, tt.isError, res.IsError)
			assert.Equal(t, tt.want, Text(res))
		})
	}
}

func TestDispatcher_Duplicate(t *testing.T) {
	exts := []extension.Extension{
		fakeExt{name: "a", tools: []extension.MCPTool{echoTool()}},
		fakeExt{name: "b", tools: []extension.MCPTool{echoTool()}},
	}
	_, err := NewDispatcher(extension.NewContext(nil, nil), SourceMCP, exts)
	assert.ErrorIs(t, err, ErrDuplicateTool)
	assert.Contains(t, err.Error(), "extension b")
}

func TestDispatcher_Tools(t *testing.T) {
	second := echoTool()
	second.Name = "another"
	d := newDispatcher(t, echoTool(), second)

	tools := d.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "echo", tools[0].Name)
	assert.Equal(t, "another", tools[1].Name)
}

func TestText(t *testing.T) {
	res := &mcp.CallToolResult{Content: []mcp.Content{
		mcp.NewTextContent("one"),
		mcp.NewTextContent("two"),
	}}
	assert.Equal(t, "one\n\ntwo", Text(res))
}

// handle sends one JSON-RPC message to the server and returns the encoded reply.
func handle(t *testing.T, d *Dispatcher, msg string) string {
	t.Helper()
	s := NewServer(d)
	ctx := context.Background()
	s.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`))
	reply := s.HandleMessage(ctx, json.RawMessage(msg))
	b, err := json.Marshal(reply)
	require.NoError(t, err)
	return string(b)
}

func TestServer_ToolsList(t *testing.T) {
	d := newDispatcher(t, echoTool())
	out := handle(t, d, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	assert.Contains(t, out, `"name":"echo"`)
	assert.Contains(t, out, `"Echo the query"`)
	assert.Contains(t, out, `"minLength":1`)
	assert.Contains(t, out, `"required":["query"]`)
}

func TestServer_ToolsCall(t *testing.T) {
	d := newDispatcher(t, echoTool())

	out := handle(t, d, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"query":"hello"}}}`)
	assert.Contains(t, out, `"text":"hello"`)
	assert.NotContains(t, out, `"isError":true`)

	out = handle(t, d, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{}}}`)
	assert.Contains(t, out, `Error: invalid arguments: query: required`)
	assert.Contains(t, out, `"isError":true`)
}

func TestDefinition(t *testing.T) {
	tool := Definition(extension.MCPTool{
		Name:        "read_notes",
		Description: "Read notes",
		Schema: validate.Schema{Fields: []validate.Field{
			{Name: "paths", Kind: validate.StringArray, Required: true, Description: "Note paths"},
			{Name: "force", Kind: validate.Boolean},
			{Name: "limit", Kind: validate.Number},
		}},
	})

	assert.Equal(t, "read_notes", tool.Name)
	assert.Equal(t, []string{"paths"}, tool.InputSchema.Required)
	require.Contains(t, tool.InputSchema.Properties, "paths")
	paths := tool.InputSchema.Properties["paths"].(map[string]any)
	assert.Equal(t, "array", paths["type"])
	assert.Equal(t, map[string]any{"type": "string"}, paths["items"])
	assert.Equal(t, "boolean", tool.InputSchema.Properties["force"].(map[string]any)["type"])
	assert.Equal(t, "number", tool.InputSchema.Properties["limit"].(map[string]any)["type"])
}
