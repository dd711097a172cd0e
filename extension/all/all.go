// Package all imports all built-in swissknife extensions.
// Import this package to register all built-in tools and commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/swissknife/extension/core"
	_ "github.com/jpl-au/swissknife/extension/datetime"
	_ "github.com/jpl-au/swissknife/extension/docgen"
	_ "github.com/jpl-au/swissknife/extension/notes"
	_ "github.com/jpl-au/swissknife/extension/webfetch"
	_ "github.com/jpl-au/swissknife/extension/websearch"
)
