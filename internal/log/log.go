// Package log provides centralised audit logging for swissknife tool calls.
// Logs are stored in ~/.swissknife/log/swissknife-log.db and record every
// tool invocation, whether it arrived over MCP or from the CLI.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("mcp:read_notes", "read").
//		Path(p).
//		Detail("count", len(paths)).
//		Write(err)
//
// The source parameter follows the format "mcp:{tool}" for calls received
// over MCP or "cli:{tool}" for calls made from the command line.
// Every entry gets a fresh call ID unless one is supplied with [Builder.Call].
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	CallID string // unique per tool call
	Source string // e.g., "mcp:search_notes", "cli:write_note"
	Action string // verb: read, write, search, fetch, etc.
	Path   string // input: note path or URL requested

	// Output fields - populated after the operation succeeds
	ResolvedPath string // output: sandbox-resolved path (if different from input)

	// Timing, unix milliseconds
	Start int64 // when Event() was called
	End   int64 // when Write() was called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Duration returns how long the logged call took.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.End-e.Start) * time.Millisecond
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the call originated:
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:read_notes")
//   - CLI: "cli:{tool}" (e.g., "cli:search_notes")
//
// The action describes what operation was performed:
//   - "read", "write", "search", "fetch", "call", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			CallID: uuid.NewString(),
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Call overrides the generated call ID, for correlating with a request ID
// assigned elsewhere.
func (b *Builder) Call(id string) *Builder {
	if id != "" {
		b.entry.CallID = id
	}
	return b
}

// Path sets the note path or URL this operation targets.
//
// Leave unset for operations without a single target (e.g., search).
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Resolved sets the sandbox-resolved path (output).
//
// Use when the path actually touched differs from the input.
//
// Example:
//
//	l.Resolved(w.Resolved)  // After confirming success
func (b *Builder) Resolved(path string) *Builder {
	b.entry.ResolvedPath = path
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, result counts, byte sizes, etc.
// Can be called multiple times to add multiple details.
//
// Example:
//
//	log.Event("mcp:search_notes", "search").
//		Detail("query", query).
//		Detail("count", res.Total())
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// ID returns the call ID of the entry being built.
func (b *Builder) ID() string {
	return b.entry.CallID
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the primary vault root, or empty when none is configured.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns up to limit entries, newest first.
// Returns nil without error when the logger is not open.
func Recent(limit int) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, nil
	}
	return l.recent(limit)
}

// Prune deletes entries older than cutoff and compacts the database.
// With dryRun set it only counts them. Returns 0 when the logger is not open.
func Prune(cutoff time.Time, dryRun bool) (int64, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return 0, nil
	}
	return l.before(cutoff.UnixMilli(), !dryRun)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
