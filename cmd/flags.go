/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Vault roots and disabled modules can come from flags, the environment or
// config; the resolution order lives here so every command agrees on it.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/config"
)

// EnvVault names the environment variable holding vault roots, separated
// by os.PathListSeparator.
const EnvVault = "SWISSKNIFE_VAULT"

var validOutputFormats = []string{"json"}

var (
	output     string
	vaultPaths []string
	disable    string
	verbose    bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// in is the input reader for commands. Defaults to os.Stdin.
var in io.Reader = os.Stdin

// Exported accessors for extensions.
// Extensions use these to access shared CLI state.

// Out returns the output writer.
func Out() io.Writer { return out }

// In returns the input reader.
func In() io.Reader { return in }

// Output returns the output format flag value.
func Output() string { return output }

// Verbose reports whether debug logging was requested.
func Verbose() bool { return verbose }

// VaultPaths returns the vault roots to register.
// Priority: --vault-path flags > SWISSKNIFE_VAULT env var > vault.paths config.
func VaultPaths(cfg *config.Config) []string {
	if len(vaultPaths) > 0 {
		return vaultPaths
	}
	if env := os.Getenv(EnvVault); env != "" {
		var paths []string
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				paths = append(paths, p)
			}
		}
		return paths
	}
	if cfg != nil {
		return cfg.VaultPaths()
	}
	return nil
}

// Disabled returns the extensions to skip.
// Priority: --disable flag > modules.disabled config.
func Disabled(cfg *config.Config) []string {
	if disable != "" {
		return config.SplitList(disable)
	}
	if cfg != nil {
		return cfg.DisabledModules()
	}
	return nil
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// SetIn sets the input reader (for testing).
func SetIn(r io.Reader) { in = r }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringArrayVar(&vaultPaths, extension.FlagVaultPath, nil, "Vault root directory (repeatable)")
	rootCmd.PersistentFlags().StringVar(&disable, extension.FlagDisable, "", "Comma-separated modules to disable")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagDirname(extension.FlagVaultPath)
}
