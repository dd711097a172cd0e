/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// PersistentPreRunE loads config, registers the vault and initialises
// extensions before any command that needs them. Commands listed in
// contextlessCommands (config, guide, version, log) skip this so they keep
// working when the config or a vault path is broken.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "swissknife",
	Short: "Multi-purpose MCP server for notes, web and docs",
	Long: `An MCP server bundling sandboxed note vault access, web search,
web page fetching, the current date and time, and a documentation prompt.

Run "swissknife serve --vault-path ~/notes" from your MCP client config.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		cmdName := topLevelCmdName(cmd)
		if contextlessCommands[cmdName] {
			return nil
		}

		if err := initExtensions(); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return err
		}

		if owner, ok := commandOwner[cmdName]; ok && !isEnabled(owner) {
			return fmt.Errorf("module %s is not enabled (disabled or unavailable)", owner)
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "swissknife notes search foo", returns "notes".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions and executes the command.
// Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	registerExtensions()
	err := rootCmd.Execute()

	log.Close()
	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
