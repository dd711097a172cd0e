// Package webfetch provides the page retrieval tools: get_raw_text,
// get_rendered_html, get_markdown and get_markdown_summary, plus the
// "fetch" command.
package webfetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/fetch"
	"github.com/jpl-au/swissknife/internal/validate"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the webfetch extension.
type Extension struct {
	client *fetch.Client
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "webfetch".
func (e *Extension) Name() string { return "webfetch" }

// Init builds the HTTP client from config.
func (e *Extension) Init(ctx extension.Context) error {
	cfg := ctx.Config()
	e.client = fetch.New(cfg.UserAgent(), cfg.MaxBody())
	return nil
}

// format selects what a tool returns for a fetched page.
type format int

const (
	formatRaw format = iota
	formatHTML
	formatMarkdown
	formatSummary
)

// failure prefixes the error reported for each format.
var failure = map[format]string{
	formatRaw:      "Failed to fetch raw text from URL",
	formatHTML:     "Failed to fetch rendered HTML from URL",
	formatMarkdown: "Failed to convert to Markdown from URL",
	formatSummary:  "Failed to extract main content from URL",
}

// get fetches rawURL and renders it as f.
func (e *Extension) get(ctx context.Context, rawURL string, f format) (string, error) {
	out, err := e.render(ctx, rawURL, f)
	if err != nil {
		slog.Warn("fetch failed", "url", rawURL, "error", err)
		return "", fmt.Errorf("%s: %s. Error: %w", failure[f], rawURL, err)
	}
	return out, nil
}

func (e *Extension) render(ctx context.Context, rawURL string, f format) (string, error) {
	if e.client == nil {
		return "", extension.ErrUnavailable
	}
	page, err := e.client.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	switch f {
	case formatMarkdown, formatSummary:
		return fetch.Markdown(page.Body, fetch.Options{
			MainOnly: f == formatSummary,
			Base:     page.URL,
		})
	default:
		return string(page.Body), nil
	}
}

// MCPTools returns the four fetch tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	tool := func(name, desc string, f format) extension.MCPTool {
		return extension.MCPTool{
			Name:        name,
			Description: desc,
			Action:      "fetch",
			Schema: validate.Schema{Fields: []validate.Field{
				{Name: "url", Kind: validate.String, Required: true, URL: true, Description: "Absolute http or https URL"},
			}},
			Handler: func(ctx context.Context, _ extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
				out, err := e.get(ctx, args.String("url"), f)
				if err != nil {
					return nil, err
				}
				return mcp.NewToolResultText(out), nil
			},
		}
	}

	return []extension.MCPTool{
		tool("get_raw_text",
			"Retrieves raw text content directly from a URL without browser rendering. "+
				"Ideal for structured data formats like JSON, XML, CSV, TSV, or plain text files. "+
				"Best used when fast, direct access to the source content is needed without processing dynamic elements.",
			formatRaw),
		tool("get_rendered_html",
			"Fetches the HTML content of a web page as served. "+
				"Scripts are not executed, so content generated client-side by single-page applications may be missing.",
			formatHTML),
		tool("get_markdown",
			"Converts web page content to well-formatted Markdown, preserving structural elements like tables and definition lists. "+
				"Recommended as the default tool for web content extraction when a clean, readable text format is needed "+
				"while maintaining document structure.",
			formatMarkdown),
		tool("get_markdown_summary",
			"Extracts and converts the main content area of a web page to Markdown format, automatically removing "+
				"navigation menus, headers, footers, and other peripheral content. Perfect for capturing the core content "+
				"of articles, blog posts, or documentation pages.",
			formatSummary),
	}
}
