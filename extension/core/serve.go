// serve.go implements the "swissknife serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks handling MCP requests
// over stdio until the client disconnects.

package core

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

  swissknife serve --vault-path ~/notes
  swissknife serve --vault-path ~/notes --vault-path ~/work
  swissknife serve --disable websearch,webfetch

Without a vault the note tools stay listed but report that no vault is configured.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	d, err := mcp.NewDispatcher(cmd.Context(), mcp.SourceMCP, cmd.Enabled())
	if err != nil {
		return err
	}

	mcp.SetLogger(cmd.Verbose())
	if cmd.Context().Roots().Empty() {
		slog.Warn("no vault configured - note tools will report an error until restarted with --vault-path <dir>")
	}
	for name, reason := range cmd.Unavailable() {
		slog.Info("module unavailable", "module", name, "reason", reason)
	}

	return mcp.Serve(d)
}
