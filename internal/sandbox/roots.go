// Package sandbox confines tool-supplied paths to the configured vault roots.
//
// New registers the roots once at startup and returns an immutable *Roots.
// Resolve is the single entry point for every filesystem tool: it decides
// whether a candidate path may be touched and returns the path to use.
// A *Roots is safe for concurrent use because it is never modified after New.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/swissknife/internal/path"
)

// Vault is one registered root directory.
type Vault struct {
	Path      string // absolute, normalised form as supplied
	Canonical string // Path with every symlink resolved
}

// Roots is the frozen set of allowed directories.
type Roots struct {
	vaults  []Vault
	allowed []string // every distinct Path and Canonical, in registration order
}

// New expands, normalises and resolves each raw root.
//
// An empty list yields an empty Roots and no error: the note tools stay
// registered but report ErrNotConfigured. A root that is missing, not a
// directory, unresolvable or below a hidden directory is an error wrapping
// ErrConfiguration.
func New(raw []string) (*Roots, error) {
	r := &Roots{}
	for _, p := range raw {
		v, err := register(p)
		if err != nil {
			return nil, err
		}
		r.add(v)
	}
	return r, nil
}

// register turns one raw root into a Vault.
func register(raw string) (Vault, error) {
	if strings.TrimSpace(raw) == "" {
		return Vault{}, fmt.Errorf("%w: empty vault path", ErrConfiguration)
	}

	expanded, err := path.ExpandHome(raw)
	if err != nil {
		return Vault{}, fmt.Errorf("%w: %s: %w", ErrConfiguration, raw, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Vault{}, fmt.Errorf("%w: %s: %w", ErrConfiguration, raw, err)
	}
	initial := path.Normalise(abs)

	// Every candidate below a hidden directory would be denied, so refuse
	// the root outright instead of silently denying everything.
	if path.Hidden(initial) {
		return Vault{}, fmt.Errorf("%w: %s: vault path must not contain hidden segments", ErrConfiguration, initial)
	}

	real, err := filepath.EvalSymlinks(initial)
	if err != nil {
		return Vault{}, fmt.Errorf("%w: cannot access directory %s: %w", ErrConfiguration, initial, err)
	}
	canonical := path.Normalise(real)

	info, err := os.Stat(canonical)
	if err != nil {
		return Vault{}, fmt.Errorf("%w: cannot access directory %s: %w", ErrConfiguration, initial, err)
	}
	if !info.IsDir() {
		return Vault{}, fmt.Errorf("%w: %s is not a directory", ErrConfiguration, initial)
	}

	return Vault{Path: initial, Canonical: canonical}, nil
}

func (r *Roots) add(v Vault) {
	for _, existing := range r.vaults {
		if existing.Canonical == v.Canonical {
			// Same directory reached twice: keep the extra spelling allowed
			// but do not search the tree twice.
			r.allow(v.Path)
			return
		}
	}
	r.vaults = append(r.vaults, v)
	r.allow(v.Path)
	r.allow(v.Canonical)
}

func (r *Roots) allow(p string) {
	if !slices.Contains(r.allowed, p) {
		r.allowed = append(r.allowed, p)
	}
}

// Empty reports whether no root is registered.
func (r *Roots) Empty() bool {
	return r == nil || len(r.vaults) == 0
}

// Allowed returns every allowed root string, original and canonical forms.
func (r *Roots) Allowed() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.allowed)
}

// Vaults returns the registered vaults in registration order.
func (r *Roots) Vaults() []Vault {
	if r == nil {
		return nil
	}
	return slices.Clone(r.vaults)
}

// Primary returns the first registered vault, against which relative note
// paths are joined.
func (r *Roots) Primary() (Vault, error) {
	if r.Empty() {
		return Vault{}, ErrNotConfigured
	}
	return r.vaults[0], nil
}

// Contains reports whether the normalised absolute path p lies within any
// allowed root.
func (r *Roots) Contains(p string) bool {
	if r == nil {
		return false
	}
	for _, root := range r.allowed {
		if path.Within(p, root) {
			return true
		}
	}
	return false
}
