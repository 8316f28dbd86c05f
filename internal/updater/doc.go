// Package updater warns when a newer release of the CLI itself is published
// to the registry. It never upgrades anything and never fails the command
// that triggered the check.
package updater
