// Package extension provides the plugin architecture for swissknife.
// Extensions encapsulate a tool module (its CLI commands and MCP tools) and
// register at init time, so a module can be added or switched off without
// touching core code.
package extension

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrUnavailable is wrapped by Init errors that should disable an extension
// softly (for example a required external program is missing) rather than
// abort startup.
var ErrUnavailable = errors.New("extension unavailable")

// Extension defines the contract for swissknife extensions.
type Extension interface {
	// Name returns a unique identifier for this extension. It is the name
	// used with --disable and modules.disabled.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the dispatcher.
	MCPTools() []MCPTool
}

// Initializable extensions perform setup once the vault and config are known.
// Returning an error that wraps ErrUnavailable disables the extension;
// any other error is fatal.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Contextless is an optional interface for extensions with commands that
// must run without loading configuration or registering vaults.
// Commands returned by ContextlessCommands() skip initialisation in
// PersistentPreRunE.
//
// Use cases:
// 1. Commands that repair a broken config (config)
// 2. Informational commands (version, guide)
type Contextless interface {
	ContextlessCommands() []string
}
