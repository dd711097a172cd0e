// tools.go defines the MCP tools of the notes extension.

package notes

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/diff"
	"github.com/jpl-au/swissknife/internal/notes"
	"github.com/jpl-au/swissknife/internal/sandbox"
	"github.com/jpl-au/swissknife/internal/validate"
)

// MCPTools returns read_notes, search_notes and write_note.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Name: "read_notes",
			Description: "Read the contents of multiple notes. Each note's content is returned with its " +
				"path as a reference. Failed reads for individual notes won't stop " +
				"the entire operation. Reading too many at once may result in an error.",
			Action: "read",
			Schema: validate.Schema{Fields: []validate.Field{
				{Name: "paths", Kind: validate.StringArray, Required: true, Description: "Note paths relative to the vault root"},
			}},
			Handler: handleReadNotes,
		},
		{
			Name: "search_notes",
			Description: "Searches for a note by its name. The search " +
				"is case-insensitive and matches partial names. " +
				"Queries can also be a valid regex. Returns paths of the notes " +
				"that match the query.",
			Action: "search",
			Schema: validate.Schema{Fields: []validate.Field{
				{Name: "query", Kind: validate.String, Required: true, Description: "Name fragment or pattern; * matches anything"},
			}},
			Handler: handleSearchNotes,
		},
		{
			Name: "write_note",
			Description: "Create or overwrite a note in the vault. The parent directory must " +
				"already exist. When an existing note changes, a diff of the change is returned.",
			Action: "write",
			Schema: validate.Schema{Fields: []validate.Field{
				{Name: "path", Kind: validate.String, Required: true, MinLen: 1, MinLenMessage: "Path cannot be empty", Description: "Note path relative to the vault root"},
				{Name: "content", Kind: validate.String, Required: true, Description: "Full note content"},
			}},
			Handler: handleWriteNote,
		},
	}
}

func handleReadNotes(ctx context.Context, extCtx extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
	roots := extCtx.Roots()
	if roots.Empty() {
		return nil, sandbox.ErrNotConfigured
	}
	got := notes.Read(ctx, roots, args.Strings("paths"), limits(extCtx.Config()))
	return mcp.NewToolResultText(got.String()), nil
}

func handleSearchNotes(ctx context.Context, extCtx extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
	res, err := notes.Search(ctx, extCtx.Roots(), args.String("query"))
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(res.String()), nil
}

func handleWriteNote(_ context.Context, extCtx extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
	p, content := args.String("path"), args.String("content")

	w, err := notes.Write(extCtx.Roots(), p, content, limits(extCtx.Config()))
	if err != nil {
		return nil, err
	}

	res := mcp.NewToolResultText(w.String())
	if w.Changed(content) {
		d := diff.Compute(w.Previous, content, p+" (before)", p+" (after)")
		res.Content = append(res.Content, mcp.NewTextContent(d.Format(false)))
	}
	return res, nil
}
