package config

// Settings are the interactively editable preferences.
type Settings struct {
	Registry  string
	PrintLogo bool
}

// CurrentSettings returns the settings as currently loaded.
func CurrentSettings() Settings {
	return Settings{
		Registry:  Get(KeyRegistry),
		PrintLogo: GetBool(KeyPrintLogo),
	}
}

// SaveSettings persists s to the config file.
func SaveSettings(s Settings) error {
	if err := Set(KeyRegistry, s.Registry); err != nil {
		return err
	}
	return Set(KeyPrintLogo, s.PrintLogo)
}
