//go:build windows

// path_windows.go splits paths on Windows, where both slash forms separate
// segments.

package path

import "strings"

// Segments splits p into its non-empty segments.
func Segments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
}
