// Package path provides lexical path helpers for the vault sandbox.
//
// Nothing in this package touches the filesystem except ExpandHome, which
// asks the OS for the current user's home directory. Symlink resolution and
// existence checks live in the sandbox package.
//
// Rules:
//   - "~" and "~/..." expand to the user's home directory
//   - Normalise collapses "." and ".." and duplicate separators
//   - Within compares whole segments, so "/vault-other" is not inside "/vault"
//   - Hidden reports any segment starting with "."
package path

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoHome indicates the user's home directory could not be determined.
var ErrNoHome = errors.New("cannot determine home directory")

// homeDir is swapped out by tests.
var homeDir = os.UserHomeDir

// ExpandHome replaces a leading "~" with the current user's home directory.
// Only "~" on its own or "~/" followed by more path is expanded; "~user"
// forms are returned unchanged.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p, nil
	}
	home, err := homeDir()
	if err != nil || home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, p[1:]), nil
}

// Normalise cleans p lexically. The result never has a trailing separator
// (except for the filesystem root) and Normalise(Normalise(p)) == Normalise(p).
func Normalise(p string) string {
	return filepath.Clean(p)
}

// Within reports whether p is root or lies underneath it.
// Both arguments must already be normalised.
func Within(p, root string) bool {
	if p == root {
		return true
	}
	if strings.HasSuffix(root, string(filepath.Separator)) {
		// Filesystem root ("/" or "C:\") already ends in a separator.
		return strings.HasPrefix(p, root)
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}

// Hidden reports whether any segment of p starts with a dot.
// This includes "." and ".." segments.
func Hidden(p string) bool {
	for _, seg := range Segments(p) {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
