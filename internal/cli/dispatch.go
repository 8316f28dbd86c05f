package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/config"
	"github.com/devlink-labs/devlink/internal/dispatch"
	"github.com/devlink-labs/devlink/internal/pkgstore"
)

func newDispatcher() *dispatch.Dispatcher {
	registryURL := config.RegistryURL()

	var npmOut io.Writer
	if log.IsVerbose() {
		npmOut = os.Stderr
	}

	return dispatch.New(dispatch.Options{
		Home:      env.Home,
		CLIHome:   env.CLIHome,
		Resolver:  newResolver(registryURL),
		Installer: &pkgstore.NpmInstaller{Registry: registryURL, Stdout: npmOut},
		Log:       log,
	})
}

// runPackage dispatches a package-backed command. A non-zero child exit
// code is returned as an *exitError so Execute can hand it to os.Exit.
func runPackage(cmd *cobra.Command, packageName, localPath string, opts map[string]any) error {
	code, err := newDispatcher().Dispatch(cmd.Context(), dispatch.Request{
		PackageName: packageName,
		LocalPath:   localPath,
		Options:     opts,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}
