// errors.go defines the sentinel errors returned by the sandbox.
//
// Denials are reported as *DeniedError, which matches both ErrAccessDenied
// and the specific reason with errors.Is:
//
//	if errors.Is(err, sandbox.ErrSymlinkEscape) {
//	    // a symlink inside the vault points outside it
//	}

package sandbox

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned by New when a vault root is unusable.
	ErrConfiguration = errors.New("invalid vault configuration")

	// ErrNotConfigured is returned when no vault root was registered.
	ErrNotConfigured = errors.New("no vault configured - restart with --vault-path <dir>")

	// ErrAccessDenied is matched by every denial.
	ErrAccessDenied = errors.New("access denied")
)

// Denial reasons.
var (
	ErrHidden        = errors.New("hidden path segment not allowed")
	ErrOutside       = errors.New("path outside allowed directories")
	ErrSymlinkEscape = errors.New("symlink target outside allowed directories")
	ErrBrokenSymlink = errors.New("unresolvable symlink not allowed")
	ErrNoParent      = errors.New("parent directory does not exist")
	ErrParentOutside = errors.New("parent directory outside allowed directories")
	ErrPermission    = errors.New("permission denied")
)

// DeniedError reports why a candidate path was refused.
type DeniedError struct {
	Path   string // the path the decision was made on
	Reason error  // one of the denial reasons above
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%v - %v: %s", ErrAccessDenied, e.Reason, e.Path)
}

// Unwrap exposes both ErrAccessDenied and the specific reason.
func (e *DeniedError) Unwrap() []error {
	return []error{ErrAccessDenied, e.Reason}
}

func deny(p string, reason error) error {
	return &DeniedError{Path: p, Reason: reason}
}
