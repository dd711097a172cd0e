// resolve.go implements the path validator.
//
// Order of checks:
//  1. hidden segments in the candidate as given
//  2. ~ expansion and absolutisation against the working directory
//  3. lexical normalisation
//  4. segment-aware containment of the lexical path
//  5. containment of the real path, or of the parent's real path when the
//     target does not exist yet
//
// Step 5 lets one validator serve readers (target exists) and writers
// (only the parent must exist) while closing symlink escapes for both.

package sandbox

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/swissknife/internal/path"
)

// Resolve validates candidate against the allowed roots and returns the path
// to operate on: the real path when the target exists, otherwise the
// validated absolute path.
func (r *Roots) Resolve(candidate string) (string, error) {
	if r.Empty() {
		return "", ErrNotConfigured
	}

	if path.Hidden(candidate) {
		return "", deny(candidate, ErrHidden)
	}

	expanded, err := path.ExpandHome(candidate)
	if err != nil {
		return "", err
	}
	abs := expanded
	if !filepath.IsAbs(abs) {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		abs = filepath.Join(wd, abs)
	}
	abs = path.Normalise(abs)

	if !r.Contains(abs) {
		return "", deny(abs, ErrOutside)
	}

	real, err := filepath.EvalSymlinks(abs)
	if err == nil {
		real = path.Normalise(real)
		if !r.Contains(real) {
			return "", deny(abs, ErrSymlinkEscape)
		}
		return real, nil
	}

	// The entry exists but cannot be resolved: a dangling or looping
	// symlink. Writing through it would land wherever it points.
	_, lerr := os.Lstat(abs)
	switch {
	case lerr == nil:
		return "", deny(abs, ErrBrokenSymlink)
	case !errors.Is(lerr, fs.ErrNotExist):
		return "", unreachable(abs, lerr)
	}

	parent := filepath.Dir(abs)
	realParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return "", unreachable(parent, err)
	}
	if !r.Contains(path.Normalise(realParent)) {
		return "", deny(parent, ErrParentOutside)
	}
	return abs, nil
}

// unreachable reports a path that could not be inspected. Permission
// failures keep their own reason; anything else (missing entry, a file used
// as a directory) means there is no parent to write into.
func unreachable(p string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return deny(p, ErrPermission)
	}
	return deny(p, ErrNoParent)
}

// Join resolves a note path relative to the primary vault. Absolute inputs
// are treated as relative to the vault as well.
func (r *Roots) Join(rel string) (string, error) {
	primary, err := r.Primary()
	if err != nil {
		return "", err
	}
	if path.Hidden(rel) {
		return "", deny(rel, ErrHidden)
	}
	return r.Resolve(filepath.Join(primary.Path, rel))
}
