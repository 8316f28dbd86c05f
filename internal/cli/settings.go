package cli

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/devlink-labs/devlink/internal/config"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Interactively edit preferences",
	Long: `Choose the npm registry command packages are installed from and whether the
logo is printed on startup. Settings are stored in config.yaml in the CLI home.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.CurrentSettings()

		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Registry").
				Options(registryOptions(s.Registry)...).
				Value(&s.Registry),
			huh.NewConfirm().
				Title("Print logo on startup?").
				Value(&s.PrintLogo),
		))
		if err := form.Run(); err != nil {
			return err
		}

		if err := config.SaveSettings(s); err != nil {
			return err
		}
		log.Success("settings saved", "registry", config.ResolveRegistry(s.Registry), "print_logo", s.PrintLogo)
		return nil
	},
}

// registryOptions lists the known registry aliases plus the current value
// when it is a custom URL.
func registryOptions(current string) []huh.Option[string] {
	choices := slices.Clone(config.RegistryChoices)
	if current != "" && !slices.Contains(choices, current) {
		choices = append(choices, current)
	}
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c+"  "+config.ResolveRegistry(c), c)
	}
	return opts
}
