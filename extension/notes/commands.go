// commands.go implements the "swissknife notes" command group.
//
// The commands call internal/notes directly with the same vault roots the
// MCP tools use, so the sandbox rules are identical from the shell.

package notes

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/diff"
	"github.com/jpl-au/swissknife/internal/log"
	"github.com/jpl-au/swissknife/internal/notes"
	"github.com/jpl-au/swissknife/internal/sandbox"
)

func (e *Extension) newNotesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "notes",
		Short: "Search, read and write vault notes",
		Long: `Search, read and write notes inside the configured vault.

  swissknife notes search daily
  swissknife notes read projects/plan.md
  echo "# Plan" | swissknife notes write projects/plan.md

Paths are relative to the first vault root. Hidden paths and anything
outside the vault are refused.`,
	}
	c.AddCommand(e.newSearchCmd(), e.newReadCmd(), e.newWriteCmd())
	return c
}

func (e *Extension) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find notes by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			query := args[0]
			res, err := notes.Search(c.Context(), e.roots, query)
			log.Event("cli:search_notes", "search").
				Detail("query", query).
				Detail("count", res.Total()).
				Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("search %q: %w", query, err))
			}

			if cmd.JSON() {
				paths := res.Paths
				if paths == nil {
					paths = []string{}
				}
				return cmd.PrintJSON(map[string]any{"paths": paths, "omitted": res.Omitted})
			}
			fmt.Fprintln(cmd.Out(), res.String())
			return nil
		},
	}
}

func (e *Extension) newReadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "read <path>...",
		Short: "Print notes",
		Long: `Print one or more notes. Output is rendered when writing to a terminal;
use --raw for the plain markdown. Exits non-zero if any note failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			raw, _ := c.Flags().GetBool(extension.FlagRaw)
			if e.roots.Empty() {
				return cmd.PrintJSONError(fmt.Errorf("read: %w", sandbox.ErrNotConfigured))
			}

			got := notes.Read(c.Context(), e.roots, args, limits(e.cfg))
			var err error
			if n := got.Failed(); n > 0 {
				err = fmt.Errorf("%d of %d notes could not be read", n, len(got))
			}
			log.Event("cli:read_notes", "read").
				Detail("count", len(args)).
				Write(err)

			if cmd.JSON() {
				items := make([]map[string]string, len(got))
				for i, n := range got {
					items[i] = map[string]string{"path": n.Path, "content": n.Content}
					if n.Err != nil {
						items[i]["error"] = n.Err.Error()
					}
				}
				if perr := cmd.PrintJSON(items); perr != nil {
					return perr
				}
				return err
			}

			text := got.String()
			if !raw {
				text = cmd.RenderMarkdown(text)
			}
			fmt.Fprint(cmd.Out(), text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(cmd.Out())
			}
			return err
		},
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print markdown without rendering")
	return c
}

func (e *Extension) newWriteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "write <path>",
		Short: "Write a note from stdin",
		Long: `Create or overwrite a note with content read from stdin.
The parent directory must already exist.

  echo "# Today" | swissknife notes write daily/today.md
  swissknife notes write plan.md --diff < plan.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
			p := args[0]

			data, err := io.ReadAll(cmd.In())
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("reading stdin: %w", err))
			}
			content := string(data)

			w, err := notes.Write(e.roots, p, content, limits(e.cfg))
			log.Event("cli:write_note", "write").
				Path(p).
				Resolved(w.Resolved).
				Detail("bytes", len(content)).
				Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("write %s: %w", p, err))
			}

			d := diff.Compute(w.Previous, content, p+" (before)", p+" (after)")
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]any{
					"path":    w.Path,
					"bytes":   w.Bytes,
					"updated": w.Existed,
					"added":   d.Added,
					"removed": d.Removed,
				})
			}
			fmt.Fprintln(cmd.Out(), w.String())
			if showDiff && w.Changed(content) {
				fmt.Fprint(cmd.Out(), d.Format(cmd.IsTerminal()))
			}
			return nil
		},
	}
	c.Flags().Bool(extension.FlagDiff, false, "Show what changed when overwriting")
	return c
}
