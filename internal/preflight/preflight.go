// Package preflight performs the environment checks that run before every
// command: refuse root, require a home directory, load ~/.env and locate the
// CLI home.
package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/devlink-labs/devlink/internal/logger"
	"github.com/devlink-labs/devlink/internal/platform"
)

// DotenvFile is loaded from the user's home directory when present.
const DotenvFile = ".env"

// ErrRunningAsRoot is returned when the CLI is started with root privileges
// without the override set.
var ErrRunningAsRoot = errors.New("refusing to run as root")

// Environment is what the checks learned about the host.
type Environment struct {
	Home         string
	CLIHome      string
	DotenvLoaded bool
}

// Run performs every check in order and stops at the first failure.
func Run(log *logger.Logger) (*Environment, error) {
	if log == nil {
		log = logger.Discard()
	}

	if err := CheckRoot(platform.IsRoot(), os.Getenv(branding.EnvVar("allow_root"))); err != nil {
		return nil, err
	}

	home, err := clihome.UserHome()
	if err != nil {
		return nil, err
	}

	loaded, err := LoadDotenv(home)
	if err != nil {
		return nil, err
	}
	if loaded {
		log.Verbose("loaded environment file", "path", filepath.Join(home, DotenvFile))
	}

	cliHome, err := clihome.Root()
	if err != nil {
		return nil, err
	}
	log.Verbose("cli home", "path", cliHome)

	return &Environment{Home: home, CLIHome: cliHome, DotenvLoaded: loaded}, nil
}

// CheckRoot fails when isRoot is true unless allow is "1" or "true".
func CheckRoot(isRoot bool, allow string) error {
	if !isRoot || allow == "1" || allow == "true" {
		return nil
	}
	return fmt.Errorf("%w: run %s as a regular user or set %s=1",
		ErrRunningAsRoot, branding.CLIName(), branding.EnvVar("allow_root"))
}

// LoadDotenv loads <home>/.env into the process environment. Variables that
// are already set are left alone. A missing file is not an error.
func LoadDotenv(home string) (bool, error) {
	path := filepath.Join(home, DotenvFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("loading %s: %w", path, err)
	}
	return true, nil
}
