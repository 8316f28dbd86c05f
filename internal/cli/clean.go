package cli

import (
	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/clihome"
)

var (
	cleanAll bool
	cleanDep bool
)

func init() {
	cleanCmd.Flags().BoolVarP(&cleanAll, "all", "a", false, "Empty the whole CLI home (default)")
	cleanCmd.Flags().BoolVarP(&cleanDep, "dep", "d", false, "Only remove cached command packages")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached packages and local state",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := env.CLIHome
		clean := clihome.CleanAll
		if cleanDep && !cleanAll {
			dir = clihome.DependenciesPath(env.CLIHome)
			clean = clihome.CleanDependencies
		}

		existed, err := clean(env.CLIHome)
		if err != nil {
			return err
		}
		if !existed {
			log.Notice("nothing to clean", "path", dir)
			return nil
		}
		log.Success("cleaned", "path", dir)
		return nil
	},
}
