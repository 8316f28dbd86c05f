// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit that one file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	NPMName     string `yaml:"npm_name"`
	InitPackage string `yaml:"init_package"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:     "devlink",
			DisplayName: "Devlink",
			Description: "Scaffolding and workflow CLI backed by on-demand npm packages",
			HomeDir:     ".devlink-cli",
			EnvPrefix:   "DEVLINK",
			GoModule:    "github.com/devlink-labs/devlink",
			NPMName:     "@devlink/cli",
			InitPackage: "@devlink/cli-init",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "devlink").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the default dot-directory name under $HOME (e.g., ".devlink-cli").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DEVLINK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// NPMName is the registry name the CLI itself is published under. The
// self-update check compares the running version against it.
func NPMName() string { load(); return defaults.NPMName }

// InitPackage is the package that implements `init`.
func InitPackage() string { load(); return defaults.InitPackage }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("registry") → "DEVLINK_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
