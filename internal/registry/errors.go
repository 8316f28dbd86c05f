package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable indicates the registry could not be contacted.
	ErrUnreachable = errors.New("registry unreachable")

	// ErrPackageNotFound indicates the registry does not know the package.
	ErrPackageNotFound = errors.New("package not found in registry")

	// ErrBadResponse indicates the registry answered with something unusable.
	ErrBadResponse = errors.New("unexpected registry response")
)

// Error is returned by every failed lookup. It wraps one of the sentinel
// errors above so callers can classify it with errors.Is.
type Error struct {
	Package string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolving version of %s: %v", e.Package, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }
