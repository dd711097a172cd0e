// errors.go defines sentinel errors for validation failures.
//
// Each error is one failure category. Detailed messages are added by
// wrapping with fmt.Errorf in the validation functions; match with errors.Is.

package validate

import "errors"

var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrInvalidPath      = errors.New("invalid path")
	ErrPathTooLong      = errors.New("path too long")
	ErrContentTooLarge  = errors.New("content too large")
)
