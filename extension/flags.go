// flags.go defines constants for CLI flag names shared across extensions.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "vault-path" -> FlagVaultPath).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagDiff   = "diff"    // Show diff output
	FlagDryRun = "dry-run" // Preview without making changes
	FlagForce  = "force"   // Skip confirmation
	FlagLocal  = "local"   // Use local scope (project config)
	FlagRaw    = "raw"     // Raw output without formatting

	// String flags

	FlagDisable   = "disable"    // Comma-separated extensions to skip
	FlagLanguage  = "language"   // Output language
	FlagOlderThan = "older-than" // Age threshold (e.g., 7d, 4w, 3m)
	FlagVaultPath = "vault-path" // Vault root directory (repeatable)

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
