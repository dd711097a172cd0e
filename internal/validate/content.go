// content.go implements note content validation.
//
// Only size is checked. Notes can contain any UTF-8 text.

package validate

import "fmt"

// Content validates note content size.
//
// Validation rules:
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}
