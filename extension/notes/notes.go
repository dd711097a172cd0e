// Package notes provides the vault note tools: read_notes, search_notes and
// write_note, plus the matching "notes" CLI commands.
// Every path is confined to the configured vault roots by internal/sandbox.
package notes

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/config"
	"github.com/jpl-au/swissknife/internal/notes"
	"github.com/jpl-au/swissknife/internal/sandbox"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the notes extension.
type Extension struct {
	roots *sandbox.Roots
	cfg   *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "notes" - this extension provides vault note access.
func (e *Extension) Name() string { return "notes" }

// Init keeps the vault roots for the CLI commands. An empty vault is not an
// error: the tools stay registered and report that no vault is configured.
func (e *Extension) Init(ctx extension.Context) error {
	e.roots = ctx.Roots()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the notes command group.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newNotesCmd()}
}

// limits returns the configured input bounds.
func limits(cfg *config.Config) notes.Limits {
	return notes.Limits{
		MaxPath:    cfg.MaxPath(),
		MaxContent: cfg.MaxContent(),
	}
}
