package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/devlink-labs/devlink/internal/auth"
	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/pkgstore"
	"github.com/devlink-labs/devlink/internal/registry"
	"github.com/devlink-labs/devlink/internal/runtime"
)

// reportError logs a fatal error once with a short message. The full chain
// is only shown with --debug.
func reportError(err error) {
	log.Error(errorMessage(err))
	log.Verbose("error detail", "type", fmt.Sprintf("%T", err), "error", err)
}

// errorMessage turns a fatal error into the line shown to the user.
func errorMessage(err error) string {
	var (
		regErr     *registry.Error
		installErr *pkgstore.InstallError
		spawnErr   *runtime.SpawnError
		nodeErr    *runtime.NodeVersionError
		entryErr   *pkgstore.EntryError
	)
	switch {
	case errors.As(err, &entryErr) && entryErr.Local:
		return fmt.Sprintf("%v; check the package.json of the local package", err)
	case errors.Is(err, pkgstore.ErrEntryNotFound):
		return fmt.Sprintf("%v; run `%s clean --dep` and try again", err, branding.CLIName())
	case errors.As(err, &installErr):
		return installErr.Error()
	case errors.As(err, &regErr):
		if errors.Is(err, registry.ErrPackageNotFound) {
			return fmt.Sprintf("package %s was not found in the registry", regErr.Package)
		}
		return regErr.Error()
	case errors.As(err, &nodeErr):
		return nodeErr.Error()
	case errors.As(err, &spawnErr):
		return fmt.Sprintf("could not start command: %v", spawnErr)
	case errors.Is(err, auth.ErrNotConfigured):
		return fmt.Sprintf("no identity service configured; run `%s config set auth_url <url>`", branding.CLIName())
	case errors.Is(err, auth.ErrUnauthenticated):
		return fmt.Sprintf("not logged in; run `%s login`", branding.CLIName())
	case errors.Is(err, huh.ErrUserAborted):
		return "aborted"
	default:
		return err.Error()
	}
}
