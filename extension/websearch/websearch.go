// Package websearch provides the gemini_web_search tool and the "websearch"
// command. The extension is unavailable when the search command is not on
// PATH.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/log"
	"github.com/jpl-au/swissknife/internal/validate"
	"github.com/jpl-au/swissknife/internal/websearch"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the websearch extension.
type Extension struct {
	searcher *websearch.Searcher

	// run replaces the process runner in tests.
	run websearch.Runner
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "websearch".
func (e *Extension) Name() string { return "websearch" }

// Init builds the searcher from config and checks the command exists.
func (e *Extension) Init(ctx extension.Context) error {
	cfg := ctx.Config()
	s, err := websearch.New(cfg.WebSearchCommand(), cfg.FallbackModel(), e.run)
	if err != nil {
		return fmt.Errorf("%w: %v", extension.ErrUnavailable, err)
	}
	if e.run == nil {
		if err := s.Available(); err != nil {
			return fmt.Errorf("%w: %v", extension.ErrUnavailable, err)
		}
	}
	e.searcher = s
	return nil
}

// MCPTools returns gemini_web_search.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Name: "gemini_web_search",
		Description: "Performs web search using Gemini AI with WebSearch capability. " +
			"Returns comprehensive search results with AI-powered analysis and summarization.",
		Action: "search",
		Schema: validate.Schema{Fields: []validate.Field{
			{Name: "query", Kind: validate.String, Required: true, MinLen: 1, MinLenMessage: "Query cannot be empty", Description: "Search query"},
		}},
		Handler: e.handleSearch,
	}}
}

func (e *Extension) handleSearch(ctx context.Context, _ extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
	out, err := e.search(ctx, args.String("query"))
	if errors.Is(err, websearch.ErrQuotaExhausted) {
		// Reported as an answer so the client can tell the user to wait.
		return mcp.NewToolResultText("Error: " + err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out), nil
}

func (e *Extension) search(ctx context.Context, query string) (string, error) {
	if e.searcher == nil {
		return "", extension.ErrUnavailable
	}
	out, err := e.searcher.Search(ctx, query)
	if err != nil {
		slog.Warn("web search failed", "command", e.searcher.Command(), "error", err)
	}
	return out, err
}

// Commands returns the websearch command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{{
		Use:   "websearch <query>...",
		Short: "Search the web through the Gemini CLI",
		Long: `Run a web search through the configured command (default "gemini").

  swissknife websearch latest go release notes

Configure the command with "swissknife config websearch.command".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			out, err := e.search(c.Context(), query)
			log.Event("cli:gemini_web_search", "search").
				Detail("query", query).
				Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"query": query, "result": out})
			}
			fmt.Fprintln(cmd.Out(), cmd.RenderMarkdown(out))
			return nil
		},
	}}
}
