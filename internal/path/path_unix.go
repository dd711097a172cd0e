//go:build !windows

// path_unix.go splits paths on Unix systems (Linux, macOS, etc).
//
// Backslashes are ordinary filename characters on Unix, so only forward
// slashes separate segments here.

package path

import "strings"

// Segments splits p into its non-empty segments.
func Segments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}
