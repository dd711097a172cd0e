// context.go defines the Context interface for extension access to
// swissknife internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// reach the vault roots and configuration without reaching into cmd.
//
// Extensions receive Context during Init(), and every tool handler receives
// it again on each call. Tests build their own Context with NewContext.

package extension

import (
	"github.com/jpl-au/swissknife/internal/config"
	"github.com/jpl-au/swissknife/internal/sandbox"
)

// Context provides extensions controlled access to swissknife internals.
type Context interface {
	// Roots returns the frozen vault roots. Never nil; may be empty.
	Roots() *sandbox.Roots

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	roots *sandbox.Roots
	cfg   *config.Config
}

// NewContext creates a new extension context. Nil arguments are replaced
// with empty values so callers never need nil checks.
func NewContext(roots *sandbox.Roots, cfg *config.Config) Context {
	if roots == nil {
		roots, _ = sandbox.New(nil)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &extContext{
		roots: roots,
		cfg:   cfg,
	}
}

// Roots returns the vault roots every filesystem tool validates against.
func (c *extContext) Roots() *sandbox.Roots {
	return c.roots
}

// Config returns the loaded user configuration for respecting preferences.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
