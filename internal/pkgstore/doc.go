// Package pkgstore manages command packages cached under the CLI home. A
// Package describes one name/version and where it lives on disk; a Store
// installs or updates that artifact through the host package manager, and
// RootFilePath locates the entry file to execute.
//
// Installs are staged next to the store and swapped in only after the package
// manager succeeds, so an existing working artifact is never lost to a failed
// update.
package pkgstore
