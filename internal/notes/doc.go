// Package notes implements the vault note operations behind the notes tools.
//
// Every path is checked with sandbox.Roots before it is touched. Search
// walks each vault independently and silently skips anything the sandbox
// denies; Read reports per-path failures alongside successes; Write only
// replaces or creates files whose parent directory already exists.
package notes

// Limits bounds caller-supplied input. Zero values mean no limit.
type Limits struct {
	MaxPath    int   // bytes in a note path
	MaxContent int64 // bytes written by Write
}
