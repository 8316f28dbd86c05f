package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/config"
	"github.com/devlink-labs/devlink/internal/logger"
	"github.com/devlink-labs/devlink/internal/preflight"
	"github.com/devlink-labs/devlink/internal/registry"
	"github.com/devlink-labs/devlink/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	debug bool
	log   = logger.Default()
	env   *preflight.Environment
)

// newResolver builds the registry client used by dispatch and the update
// check. Tests swap it out.
var newResolver = func(baseURL string) registry.Resolver {
	return registry.New(baseURL, registry.WithUserAgent(branding.CLIName()+"/"+buildVersion))
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs scaffolding and workflow commands that are published as
npm packages. Each command's package is installed into ~/` + branding.HomeDir() + ` on first
use, kept up to date, and executed in its own process.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose output")
}

// prepare runs before every command: environment checks, settings, banner
// and the self-update check.
func prepare(cmd *cobra.Command, args []string) error {
	log.SetVerbose(debug)
	if skipPrepare(cmd) {
		return nil
	}

	e, err := preflight.Run(log)
	if err != nil {
		return err
	}
	env = e
	config.Load(env.CLIHome)

	if config.GetBool(config.KeyPrintLogo) {
		printLogo(cmd.ErrOrStderr())
	}
	log.Success(branding.CLIName(), "version", buildVersion)

	checker := updater.New(newResolver(config.RegistryURL()),
		updater.WithOutput(cmd.ErrOrStderr()),
		updater.WithLogger(log))
	checker.CheckSelfUpdate(cmd.Context(), buildVersion)
	return nil
}

func skipPrepare(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// exitError carries a delegated command's non-zero exit code through cobra
// without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.code)
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	reportError(err)
	return 1
}
