package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jpl-au/swissknife/internal/sandbox"
	"github.com/jpl-au/swissknife/internal/validate"
)

// noteMode is the permission set on written notes.
const noteMode = 0o644

// ErrIsDirectory is returned when a write targets an existing directory.
var ErrIsDirectory = errors.New("path is a directory")

// Written describes a completed write.
type Written struct {
	Path     string // requested path, relative to the primary vault
	Resolved string // absolute path that was written
	Existed  bool   // a file was replaced
	Previous string // replaced content, empty when the file is new
	Bytes    int
}

// Changed reports whether the write replaced different content.
func (w Written) Changed(content string) bool {
	return w.Existed && w.Previous != content
}

// String renders the outcome the way the write tool reports it.
func (w Written) String() string {
	if w.Existed {
		return fmt.Sprintf("Successfully updated %s (%d bytes)", w.Path, w.Bytes)
	}
	return fmt.Sprintf("Successfully wrote %s (%d bytes)", w.Path, w.Bytes)
}

// Write creates or replaces a note relative to the primary vault.
// The parent directory must already exist; none are created.
func Write(roots *sandbox.Roots, p, content string, lim Limits) (Written, error) {
	if err := validate.NotePath(p, lim.MaxPath); err != nil {
		return Written{}, err
	}
	if err := validate.Content(content, lim.MaxContent); err != nil {
		return Written{}, err
	}

	resolved, err := roots.Join(p)
	if err != nil {
		return Written{}, err
	}

	w := Written{Path: p, Resolved: resolved, Bytes: len(content)}

	info, err := os.Stat(resolved)
	switch {
	case err == nil && info.IsDir():
		return Written{}, fmt.Errorf("%w: %s", ErrIsDirectory, p)
	case err == nil:
		prev, err := os.ReadFile(resolved)
		if err != nil {
			return Written{}, fmt.Errorf("reading existing note: %w", err)
		}
		w.Existed = true
		w.Previous = string(prev)
	case !errors.Is(err, fs.ErrNotExist):
		return Written{}, fmt.Errorf("checking note: %w", err)
	}

	if w.Existed && w.Previous == content {
		return w, nil
	}

	if err := os.WriteFile(resolved, []byte(content), noteMode); err != nil {
		return Written{}, fmt.Errorf("writing note: %w", err)
	}
	return w, nil
}
