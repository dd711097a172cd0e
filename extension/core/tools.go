// tools.go implements the "swissknife tools" and "swissknife call" commands.
//
// Both build the same dispatcher the MCP server uses, so a tool called from
// the shell behaves exactly as it does for an MCP client.

package core

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/internal/mcp"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools of enabled modules",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := mcp.NewDispatcher(cmd.Context(), mcp.SourceCLI, cmd.Enabled())
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				defs := make([]any, 0, len(d.Tools()))
				for _, t := range d.Tools() {
					defs = append(defs, mcp.Definition(t))
				}
				return cmd.PrintJSON(defs)
			}

			for _, t := range d.Tools() {
				fmt.Fprintf(cmd.Out(), "%-36s %s\n", t.Name, firstSentence(t.Description))
			}
			return nil
		},
	}
}

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Invoke a tool through the dispatcher",
		Long: `Invoke one tool with a JSON argument object, exactly as an MCP client would.

  swissknife call get_current_datetime
  swissknife call search_notes '{"query":"daily"}'
  echo '{"paths":["a.md"]}' | swissknife call read_notes -

Use "-" to read the arguments from stdin. Exits non-zero on an error result.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCall,
	}
}

func runCall(c *cobra.Command, args []string) error {
	d, err := mcp.NewDispatcher(cmd.Context(), mcp.SourceCLI, cmd.Enabled())
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	raw := "{}"
	if len(args) == 2 {
		raw = args[1]
		if raw == "-" {
			b, err := io.ReadAll(cmd.In())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("reading stdin: %w", err))
			}
			raw = string(b)
		}
	}

	var toolArgs map[string]any
	if err := json.Unmarshal([]byte(raw), &toolArgs); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("arguments must be a JSON object: %w", err))
	}

	res := d.Call(c.Context(), args[0], toolArgs)

	if cmd.JSON() {
		if err := cmd.PrintJSON(res); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.Out(), mcp.Text(res))
	}

	if res.IsError {
		c.SilenceErrors = true
		c.SilenceUsage = true
		return fmt.Errorf("tool %s failed", args[0])
	}
	return nil
}

// firstSentence trims a tool description for the one-line listing.
func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
