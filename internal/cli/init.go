package cli

import (
	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/branding"
)

var (
	initPackagePath string
	initForce       bool
)

func init() {
	initCmd.Flags().StringVar(&initPackagePath, "packagePath", "", "Run the init package from a local checkout instead of the registry")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Initialize even if the target directory is not empty")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [type]",
	Short: "Create a new project from a template",
	Long: `Create a new project. The work is done by the ` + branding.InitPackage() + ` package,
which is installed or updated before it runs.

  ` + branding.CLIName() + ` init                       # interactive
  ` + branding.CLIName() + ` init project --force
  ` + branding.CLIName() + ` init --packagePath ./cli-init  # use a local checkout`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPackage(cmd, branding.InitPackage(), initPackagePath, initOptions(args, initForce))
	},
}

// initOptions builds the options handed to the init package. An absent type
// is left out so the package can prompt for it.
func initOptions(args []string, force bool) map[string]any {
	opts := map[string]any{"force": force}
	if len(args) > 0 && args[0] != "" {
		opts["type"] = args[0]
	}
	return opts
}
