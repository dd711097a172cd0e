package notes

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/swissknife/internal/sandbox"
	"github.com/jpl-au/swissknife/internal/validate"
)

// entrySep separates notes in the rendered output of Read.
const entrySep = "\n---\n"

// readConcurrency caps the files Read has open at once.
const readConcurrency = 16

// Note is the outcome of reading one requested path.
type Note struct {
	Path    string // as requested, relative to the primary vault
	Content string
	Err     error
}

// String renders the note the way the read tool reports it.
func (n Note) String() string {
	if n.Err != nil {
		return fmt.Sprintf("%s: Error - %s", n.Path, n.Err)
	}
	return fmt.Sprintf("%s:\n%s\n", n.Path, n.Content)
}

// Notes is an ordered batch of read outcomes.
type Notes []Note

// String joins every entry, successes and failures alike.
func (ns Notes) String() string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, entrySep)
}

// Failed returns the number of entries that could not be read.
func (ns Notes) Failed() int {
	var n int
	for _, note := range ns {
		if note.Err != nil {
			n++
		}
	}
	return n
}

// Read reads each path relative to the primary vault. Paths are read
// concurrently; a failure is recorded on its entry and never aborts the
// batch. Output order matches the input order.
func Read(ctx context.Context, roots *sandbox.Roots, paths []string, lim Limits) Notes {
	out := make(Notes, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, p := range paths {
		g.Go(func() error {
			out[i] = readOne(ctx, roots, p, lim)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	return out
}

func readOne(ctx context.Context, roots *sandbox.Roots, p string, lim Limits) Note {
	n := Note{Path: p}
	if err := ctx.Err(); err != nil {
		n.Err = err
		return n
	}
	if err := validate.NotePath(p, lim.MaxPath); err != nil {
		n.Err = err
		return n
	}

	resolved, err := roots.Join(p)
	if err != nil {
		n.Err = err
		return n
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		n.Err = err
		return n
	}
	n.Content = string(data)
	return n
}
