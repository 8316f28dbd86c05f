package pkgstore

import (
	"path/filepath"
	"strings"

	"github.com/devlink-labs/devlink/internal/clihome"
)

// LatestVersion is the sentinel meaning "resolve the newest version at use time".
const LatestVersion = "latest"

// Package identifies a command package and its on-disk locations.
type Package struct {
	// Name is the registry-qualified package name, e.g. "@devlink/cli-init".
	Name string
	// Version is a semver string, or "" / LatestVersion.
	Version string
	// TargetPath is the install prefix, or the caller's local package path.
	TargetPath string
	// StorePath holds installed module trees. Equal to TargetPath when a
	// local path is used directly.
	StorePath string
}

// IsLatest reports whether the version still needs resolving.
func (p *Package) IsLatest() bool {
	return p.Version == "" || p.Version == LatestVersion
}

// Dir returns the package directory inside the store.
func (p *Package) Dir() string {
	return filepath.Join(p.StorePath, filepath.FromSlash(p.Name))
}

// Spec returns the installer argument, e.g. "@devlink/cli-init@1.2.0".
func (p *Package) Spec() string {
	if p.IsLatest() {
		return p.Name + "@" + LatestVersion
	}
	return p.Name + "@" + p.Version
}

// stagingName turns a package spec into a single path element.
func stagingName(name, version string) string {
	return flatName(name) + "@" + version
}

// backupName is the staging entry holding the previous install during a swap.
func backupName(name string) string {
	return flatName(name) + clihome.BackupSuffix
}

func flatName(name string) string {
	return strings.NewReplacer("/", "+", "@", "").Replace(name)
}
