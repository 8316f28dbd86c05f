package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyRegistry  = "registry"
	KeyPrintLogo = "print_logo"
	KeyAuthURL   = "auth_url"
)

// Well-known registry aliases accepted by the registry setting.
var registryAliases = map[string]string{
	"npm":    "https://registry.npmjs.org",
	"taobao": "https://registry.npmmirror.com",
}

// RegistryChoices lists the aliases offered by `devlink settings`.
var RegistryChoices = []string{"npm", "taobao"}

var configFile string

// Load initializes Viper to read <cliHome>/config.yaml and DEVLINK_* env vars.
func Load(cliHome string) {
	configFile = clihome.ConfigPath(cliHome)

	viper.SetConfigFile(configFile)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRegistry, "npm")
	viper.SetDefault(KeyPrintLogo, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// All returns every known setting, defaults included, keyed by name.
func All() map[string]any {
	return viper.AllSettings()
}

// Set writes a config key-value pair to the config file. Only values
// already in the file and the new key are written; defaults and environment
// overrides stay out of it.
func Set(key string, value any) error {
	if configFile == "" {
		return fmt.Errorf("config not loaded")
	}
	if err := clihome.EnsureDir(filepath.Dir(configFile)); err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	viper.Set(key, value)
	return nil
}

// RegistryURL returns the base URL of the npm registry. The registry setting
// may be an alias from RegistryChoices or a full URL.
func RegistryURL() string {
	return ResolveRegistry(Get(KeyRegistry))
}

// ResolveRegistry expands a registry alias. Unknown values that look like
// URLs are returned unchanged; anything else falls back to npm.
func ResolveRegistry(value string) string {
	value = strings.TrimSpace(value)
	if u, ok := registryAliases[value]; ok {
		return u
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return strings.TrimRight(value, "/")
	}
	return registryAliases["npm"]
}
