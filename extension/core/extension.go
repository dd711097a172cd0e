// Package core provides the core extension for swissknife.
// It registers commands: serve, tools, call, config, guide, log, vacuum, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension   = (*Extension)(nil)
	_ extension.Contextless = (*Extension)(nil)
)

// Name returns "core" - this extension provides the server and its plumbing.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newServeCmd(),
		newToolsCmd(),
		newCallCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newLogCmd(),
		newVacuumCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - tools are contributed by the other extensions.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// ContextlessCommands returns commands that must work without a vault or
// a valid config.
// config: repairs a broken config file.
// guide, version: informational only.
// log, vacuum: work on the audit database directly.
func (e *Extension) ContextlessCommands() []string {
	return []string{"config", "guide", "log", "vacuum", "version"}
}
