// Package datetime provides the get_current_datetime tool and the
// "datetime" command.
package datetime

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/validate"
)

// ISO8601 is the UTC timestamp layout with millisecond precision.
const ISO8601 = "2006-01-02T15:04:05.000Z"

// now is swapped out by tests.
var now = time.Now

func init() {
	extension.Register(&Extension{})
}

// Extension implements the datetime extension.
type Extension struct{}

var _ extension.Extension = (*Extension)(nil)

// Name returns "datetime".
func (e *Extension) Name() string { return "datetime" }

// Commands returns the datetime command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{{
		Use:   "datetime",
		Short: "Print the current UTC time in ISO 8601",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ts := Current()
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"datetime": ts})
			}
			fmt.Fprintln(cmd.Out(), ts)
			return nil
		},
	}}
}

// MCPTools returns get_current_datetime.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Name:        "get_current_datetime",
		Description: "Get the current date and time in ISO 8601 format.",
		Action:      "read",
		Schema:      validate.Schema{},
		Handler: func(context.Context, extension.Context, validate.Args) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(Current()), nil
		},
	}}
}

// Current returns the current time formatted with ISO8601.
func Current() string {
	return now().UTC().Format(ISO8601)
}
