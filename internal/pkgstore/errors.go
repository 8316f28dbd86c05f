package pkgstore

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound indicates an installed package has no usable entry file.
var ErrEntryNotFound = errors.New("package entry file not found")

// InstallError is returned when the package manager fails to install or
// update a package. The previously cached artifact, if any, is left intact.
type InstallError struct {
	Package string
	Version string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("installing %s@%s: %v", e.Package, e.Version, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InstallError) Unwrap() error { return e.Err }

// EntryError reports why an entry file could not be resolved. It matches
// ErrEntryNotFound with errors.Is.
type EntryError struct {
	Package string
	Path    string
	// Local is set when the package is a caller's checkout rather than a
	// cached install, so clearing the cache cannot help.
	Local bool
	Err   error
}

func (e *EntryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("entry file for %s not found at %s: %v", e.Package, e.Path, e.Err)
	}
	return fmt.Sprintf("entry file for %s not found at %s", e.Package, e.Path)
}

// Unwrap exposes both the sentinel and the cause.
func (e *EntryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrEntryNotFound}
	}
	return []error{ErrEntryNotFound, e.Err}
}
