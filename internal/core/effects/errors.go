package effects

import (
	"errors"
	"fmt"
)

// Error taxonomy. Skills wrap these so callers can classify with errors.Is.
var (
	ErrAccessDenied   = errors.New("access denied")
	ErrValidation     = errors.New("validation failed")
	ErrReconciliation = errors.New("reconciliation failed")
	ErrNotFound       = errors.New("not found")
	ErrTransient      = errors.New("transient failure")
)

// Denied wraps ErrAccessDenied with a reason.
func Denied(reason string) error {
	return fmt.Errorf("%w: %s", ErrAccessDenied, reason)
}

// Invalid wraps ErrValidation with a formatted description.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with a formatted description.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Unreconciled wraps ErrReconciliation with a formatted description.
func Unreconciled(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReconciliation, fmt.Sprintf(format, args...))
}
