/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// render.go provides terminal-aware markdown output shared by commands that
// print notes or guides.

package cmd

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is an interactive terminal. Tests
// replace it to force one mode.
var isTerminal = func() bool {
	return out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// IsTerminal reports whether output goes to an interactive terminal.
func IsTerminal() bool { return isTerminal() }

// RenderMarkdown returns md styled with glamour when writing to a terminal,
// and unchanged otherwise (pipes, redirects, JSON consumers).
func RenderMarkdown(md string) string {
	if !isTerminal() {
		return md
	}
	rendered, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return rendered
}
