package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/swissknife/internal/sandbox"
)

// SearchLimit caps the number of paths returned by Search.
const SearchLimit = 200

// noteExt is the only file extension Search reports.
const noteExt = ".md"

// SearchResult holds the matched paths and how many were cut by SearchLimit.
type SearchResult struct {
	Paths   []string // relative to the vault they were found in, slash-separated
	Omitted int
}

// Total returns the number of matches before the limit was applied.
func (r SearchResult) Total() int {
	return len(r.Paths) + r.Omitted
}

// String renders the result the way the search tool reports it.
func (r SearchResult) String() string {
	var b strings.Builder
	if len(r.Paths) == 0 {
		b.WriteString("No matches found")
	} else {
		b.WriteString(strings.Join(r.Paths, "\n"))
	}
	if r.Omitted > 0 {
		fmt.Fprintf(&b, "\n\n... %d more results not shown.", r.Omitted)
	}
	return b.String()
}

// matcher decides whether a file name matches a query.
type matcher struct {
	lower string
	re    *regexp.Regexp // nil when the query is not a valid pattern
}

func newMatcher(query string) matcher {
	m := matcher{lower: strings.ToLower(query)}
	re, err := regexp.Compile("(?i)" + strings.ReplaceAll(query, "*", ".*"))
	if err == nil {
		m.re = re
	}
	return m
}

func (m matcher) match(name string) bool {
	if !strings.HasSuffix(name, noteExt) {
		return false
	}
	if strings.Contains(strings.ToLower(name), m.lower) {
		return true
	}
	return m.re != nil && m.re.MatchString(name)
}

// Search finds note files under every vault whose names match query.
//
// Each vault is walked concurrently; results are concatenated in vault order
// so repeated searches over an unchanged tree return identical output. An
// empty Roots yields an empty result.
func Search(ctx context.Context, roots *sandbox.Roots, query string) (SearchResult, error) {
	if roots.Empty() {
		return SearchResult{}, nil
	}

	m := newMatcher(query)
	vaults := roots.Vaults()
	found := make([][]string, len(vaults))

	g, ctx := errgroup.WithContext(ctx)
	for i, v := range vaults {
		g.Go(func() error {
			w := walker{ctx: ctx, roots: roots, base: v.Path, m: m}
			if err := w.walk(v.Path); err != nil {
				return err
			}
			found[i] = w.paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SearchResult{}, err
	}

	var all []string
	for _, paths := range found {
		all = append(all, paths...)
	}

	var res SearchResult
	if len(all) > SearchLimit {
		res.Omitted = len(all) - SearchLimit
		all = all[:SearchLimit]
	}
	res.Paths = all
	return res, nil
}

// walker performs a pre-order traversal of one vault.
type walker struct {
	ctx   context.Context
	roots *sandbox.Roots
	base  string
	m     matcher
	paths []string
}

func (w *walker) walk(dir string) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	// os.ReadDir sorts by name, which keeps output stable between runs.
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("search: skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		real, err := w.roots.Resolve(full)
		if err != nil {
			if !errors.Is(err, sandbox.ErrAccessDenied) {
				slog.Debug("search: skipping entry", "path", full, "error", err)
			}
			continue
		}

		// DirEntry.IsDir is false for symlinks, so linked directories are
		// never descended into.
		if e.IsDir() {
			if err := w.walk(full); err != nil {
				return err
			}
			continue
		}

		if w.m.match(e.Name()) && regular(real) {
			w.paths = append(w.paths, w.rel(full))
		}
	}
	return nil
}

// regular reports whether the resolved entry is a plain file. A symlink
// named like a note may point at a directory.
func regular(real string) bool {
	info, err := os.Stat(real)
	return err == nil && info.Mode().IsRegular()
}

func (w *walker) rel(full string) string {
	r, err := filepath.Rel(w.base, full)
	if err != nil {
		r = strings.TrimPrefix(full, w.base)
	}
	return filepath.ToSlash(r)
}
