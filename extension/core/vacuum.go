// vacuum.go implements the "swissknife vacuum" command for audit log
// retention.
//
// Separated from log.go because vacuum is destructive and requires
// confirmation and dry-run support.

package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/duration"
	"github.com/jpl-au/swissknife/internal/log"
)

// defaultRetention is used when --older-than is not given.
const defaultRetention = "30d"

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Delete old audit log entries",
		Long: `Permanently delete audit log entries older than a duration and compact
the database.

  swissknife vacuum --dry-run           # count entries older than 30 days
  swissknife vacuum --older-than 4w     # prompt, then delete
  swissknife vacuum --older-than 12h -f

Duration formats: 12h (hours), 7d (days), 4w (weeks), 3m (months)`,
		Args: cobra.NoArgs,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, defaultRetention, "Delete entries older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Count entries without deleting")
	c.Flags().BoolP(extension.FlagForce, "f", false, "Skip confirmation")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	force, _ := c.Flags().GetBool(extension.FlagForce)

	age, err := duration.Parse(olderThan)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	cutoff := time.Now().Add(-age)

	count, err := log.Prune(cutoff, true)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if dryRun || count == 0 {
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"dry_run": dryRun, "count": count})
		}
		fmt.Fprintf(cmd.Out(), "%d log entries older than %s\n", count, olderThan)
		return nil
	}

	if !force && !cmd.JSON() && !confirm(fmt.Sprintf("Delete %d log entries older than %s?", count, olderThan)) {
		fmt.Fprintln(cmd.Out(), "Cancelled")
		return nil
	}

	deleted, err := log.Prune(cutoff, false)
	log.Event("cli:vacuum", "vacuum").
		Detail("older_than", olderThan).
		Detail("count", deleted).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"dry_run": false, "count": deleted})
	}
	fmt.Fprintf(cmd.Out(), "Deleted %d log entries\n", deleted)
	return nil
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(cmd.In()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
