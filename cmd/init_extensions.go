/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, registers the vault roots and wires up extensions.
//
// Extensions register during init() but aren't initialised until first
// command execution, after flags are parsed. The vault roots are built once
// and shared by every extension through the Context.

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/config"
	"github.com/jpl-au/swissknife/internal/log"
	"github.com/jpl-au/swissknife/internal/sandbox"
)

// coreExtension cannot be disabled; it provides serve, tools and call.
const coreExtension = "core"

// contextlessCommands lists commands that bypass extension initialisation.
// Built from extension-declared contextless commands.
var contextlessCommands map[string]bool

// commandOwner maps each top-level command to the extension providing it.
var commandOwner map[string]string

// Global extension state, created during initialisation.
var (
	extContext  extension.Context
	enabled     []extension.Extension
	unavailable = map[string]error{}
	initOnce    sync.Once
	initErr     error
)

// Context returns the shared extension context. Nil before initialisation.
func Context() extension.Context { return extContext }

// Enabled returns the extensions that initialised successfully and were not
// disabled, in registration order.
func Enabled() []extension.Extension { return enabled }

// Unavailable returns extensions that reported extension.ErrUnavailable.
func Unavailable() map[string]error { return unavailable }

func isEnabled(name string) bool {
	return slices.ContainsFunc(enabled, func(e extension.Extension) bool {
		return e.Name() == name
	})
}

// initExtensions loads config, registers vault roots and initialises every
// enabled extension.
//
// A vault that cannot be registered is fatal: serving with a silently
// shrunken sandbox would surprise the user. An extension returning an error
// wrapping extension.ErrUnavailable is skipped; any other Init error is fatal.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		roots, err := sandbox.New(VaultPaths(cfg))
		if err != nil {
			initErr = err
			return
		}

		// Project identifier for audit logging
		if v, err := roots.Primary(); err == nil {
			log.SetProject(v.Path)
		} else {
			log.SetProject("")
		}

		extContext = extension.NewContext(roots, cfg)
		disabled := Disabled(cfg)

		for _, ext := range extension.All() {
			name := ext.Name()
			if slices.Contains(disabled, name) {
				if name == coreExtension {
					slog.Warn("core module cannot be disabled")
				} else {
					slog.Debug("module disabled", "module", name)
					continue
				}
			}

			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					if errors.Is(err, extension.ErrUnavailable) {
						unavailable[name] = err
						slog.Debug("module unavailable", "module", name, "error", err)
						continue
					}
					initErr = fmt.Errorf("init extension %s: %w", name, err)
					return
				}
			}
			enabled = append(enabled, ext)
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		contextlessCommands = make(map[string]bool)
		commandOwner = make(map[string]string)

		for _, ext := range extension.All() {
			for _, c := range ext.Commands() {
				rootCmd.AddCommand(c)
				commandOwner[c.Name()] = ext.Name()
			}
			if cl, ok := ext.(extension.Contextless); ok {
				for _, name := range cl.ContextlessCommands() {
					contextlessCommands[name] = true
				}
			}
		}
	})
}
