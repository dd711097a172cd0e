// Package diff computes line-oriented differences between two versions of a
// note, used to report what an overwrite changed.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines kept either side of a change.
// Longer unchanged runs are collapsed to a single "..." marker.
const contextLines = 3

const (
	red   = "\033[31m"
	green = "\033[32m"
	reset = "\033[0m"
)

// Result is the outcome of comparing two versions of a note.
type Result struct {
	Old     string // label of the previous version
	New     string // label of the new version
	Diff    string // rendered body without header
	Added   int    // lines only in the new version
	Removed int    // lines only in the old version
}

// Compute returns a line diff between old and new content.
// Lines are hashed to runes first so the diff never splits a line.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	r := Result{Old: oldLabel, New: newLabel}
	var out strings.Builder
	for _, d := range diffs {
		lines := split(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			r.Removed += len(lines)
			emit(&out, "- ", lines)
		case diffmatchpatch.DiffInsert:
			r.Added += len(lines)
			emit(&out, "+ ", lines)
		case diffmatchpatch.DiffEqual:
			emit(&out, "  ", collapse(lines))
		}
	}
	r.Diff = out.String()
	return r
}

// Summary describes the change in one line, e.g. "2 added, 1 removed".
func (r Result) Summary() string {
	return fmt.Sprintf("%d added, %d removed", r.Added, r.Removed)
}

// Format returns the diff with a "---/+++" header, coloured when requested.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if !colour {
		return header + r.Diff
	}
	return header + Colourise(r.Diff)
}

// Colourise wraps removed lines in red and added lines in green.
func Colourise(d string) string {
	var b strings.Builder
	for _, line := range split(d) {
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		case line != "":
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// split breaks text into lines, ignoring the final newline.
func split(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// collapse keeps the edges of a long unchanged run.
func collapse(lines []string) []string {
	if len(lines) <= 2*contextLines {
		return lines
	}
	kept := make([]string, 0, 2*contextLines+1)
	kept = append(kept, lines[:contextLines]...)
	kept = append(kept, "...")
	return append(kept, lines[len(lines)-contextLines:]...)
}

func emit(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix + l + "\n")
	}
}
