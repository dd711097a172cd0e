// log.go implements the "swissknife log" command for reading the audit log.

package core

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/log"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent tool calls from the audit log",
		Long: `Show recent tool calls recorded in the audit log, newest first.

  swissknife log            # last 20 calls
  swissknife log -n 100     # last 100 calls
  swissknife log -o json    # machine-readable

The log lives in ~/.swissknife/log/swissknife-log.db.`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Number of entries to show")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	entries, err := log.Recent(limit)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.Out(), "No log entries")
		return nil
	}

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAIL " + e.Error
		}
		when := time.UnixMilli(e.Start).Format(time.DateTime)
		target := e.Path
		if target == "" {
			if q, ok := e.Detail["query"]; ok {
				target = fmt.Sprintf("%q", q)
			}
		}
		fmt.Fprintf(cmd.Out(), "%s  %-28s %-7s %6s  %s  %s\n",
			when, e.Source, e.Action, e.Duration().Round(time.Millisecond), target, status)
	}
	return nil
}
