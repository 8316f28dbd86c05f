package clihome

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devlink-labs/devlink/internal/branding"
)

// Directory names under the CLI home.
const (
	DependenciesDir = "dependencies"
	NodeModulesDir  = "node_modules"
	StagingDir      = ".staging"
	ConfigFile      = "config.yaml"
	CredentialsFile = "credentials.yaml"
)

// BackupSuffix marks a previous install moved into the staging directory
// while an update swaps in the new one.
const BackupSuffix = ".old"

// HomeEnvVar names the directory (relative to the user's home) used as the
// CLI home instead of the branded default.
const HomeEnvVar = "CLI_HOME"

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermSecure os.FileMode = 0600
)

// ErrNoUserHome is returned when the current user has no usable home directory.
var ErrNoUserHome = errors.New("current user home directory does not exist")

// UserHome returns the user's home directory and verifies that it exists.
func UserHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoUserHome
	}
	if _, err := os.Stat(home); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoUserHome, home)
	}
	return home, nil
}

// Root returns the CLI home directory. CLI_HOME is joined onto the user's
// home directory; otherwise the branded dot-directory is used.
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if v := os.Getenv(HomeEnvVar); v != "" {
		return filepath.Join(home, v), nil
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// DependenciesPath returns <root>/dependencies, the install prefix for
// cached packages.
func DependenciesPath(root string) string {
	return filepath.Join(root, DependenciesDir)
}

// StorePath returns <root>/dependencies/node_modules, where installed
// package trees live.
func StorePath(root string) string {
	return filepath.Join(root, DependenciesDir, NodeModulesDir)
}

// ConfigPath returns the path of the settings file under root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// CredentialsPath returns the path of the stored auth token under root.
func CredentialsPath(root string) string {
	return filepath.Join(root, CredentialsFile)
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPermNormal); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}
