package validate

import (
	"fmt"
	"strings"
)

// NotePath validates a caller-supplied note path before sandbox resolution.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected (the OS would truncate the path at the NUL)
//   - Max length enforced if maxLen > 0
//
// Traversal and containment are the sandbox's job, not this function's.
func NotePath(p string, maxLen int) error {
	if p == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	if maxLen > 0 && len(p) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrPathTooLong, len(p), maxLen)
	}
	return nil
}
