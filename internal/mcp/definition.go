// definition.go converts argument schemas into the input schemas advertised
// by tools/list.

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/validate"
)

// Definition builds the mcp-go tool definition for t.
func Definition(t extension.MCPTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, f := range t.Schema.Fields {
		opts = append(opts, fieldOption(f))
	}
	return mcp.NewTool(t.Name, opts...)
}

func fieldOption(f validate.Field) mcp.ToolOption {
	var props []mcp.PropertyOption
	if f.Required {
		props = append(props, mcp.Required())
	}
	if f.Description != "" {
		props = append(props, mcp.Description(f.Description))
	}

	switch f.Kind {
	case validate.StringArray:
		props = append(props, mcp.Items(map[string]any{"type": "string"}))
		return mcp.WithArray(f.Name, props...)
	case validate.Boolean:
		return mcp.WithBoolean(f.Name, props...)
	case validate.Number:
		return mcp.WithNumber(f.Name, props...)
	default:
		if f.MinLen > 0 {
			props = append(props, mcp.MinLength(f.MinLen))
		}
		return mcp.WithString(f.Name, props...)
	}
}
