package pkgstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/devlink-labs/devlink/internal/logger"
	"github.com/devlink-labs/devlink/internal/manifest"
	"github.com/devlink-labs/devlink/internal/registry"
)

// Store installs and updates one Package inside the managed cache.
type Store struct {
	pkg       *Package
	installer Installer
	resolver  registry.Resolver
	log       *logger.Logger
}

// NewStore returns a Store for pkg. The resolver is only consulted when pkg
// still carries the latest sentinel; it may be nil otherwise.
func NewStore(pkg *Package, installer Installer, resolver registry.Resolver, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{
		pkg:       pkg,
		installer: installer,
		resolver:  resolver,
		log:       log,
	}
}

// Package returns the descriptor this store manages.
func (s *Store) Package() *Package {
	return s.pkg
}

// Exists reports whether the package's metadata file is present in the store.
func (s *Store) Exists() bool {
	info, err := os.Stat(filepath.Join(s.pkg.Dir(), manifest.FileName))
	return err == nil && !info.IsDir()
}

// CachedVersion returns the version recorded in the cached package.json.
func (s *Store) CachedVersion() (string, error) {
	meta, err := manifest.ReadDir(s.pkg.Dir())
	if err != nil {
		return "", err
	}
	return meta.Version, nil
}

// Install fetches the package into the store, replacing any cached copy only
// once the new one is fully installed. Installing an unchanged descriptor
// twice yields the same result.
func (s *Store) Install(ctx context.Context) error {
	version, err := s.resolveVersion(ctx)
	if err != nil {
		return err
	}

	if err := clihome.EnsureDir(s.pkg.TargetPath); err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: err}
	}
	if err := clihome.EnsureDir(s.pkg.StorePath); err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: err}
	}

	stagingRoot := filepath.Join(s.pkg.TargetPath, clihome.StagingDir)
	staging := filepath.Join(stagingRoot, stagingName(s.pkg.Name, version))
	if err := os.RemoveAll(staging); err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: fmt.Errorf("clearing staging directory: %w", err)}
	}
	if err := clihome.EnsureDir(staging); err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: err}
	}
	defer os.RemoveAll(staging)

	s.log.Verbose("running package manager", "spec", s.pkg.Spec(), "prefix", staging)
	if err := s.installer.Install(ctx, staging, s.pkg.Spec()); err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: err}
	}

	staged := filepath.Join(staging, clihome.NodeModulesDir, filepath.FromSlash(s.pkg.Name))
	meta, err := manifest.ReadDir(staged)
	if err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: fmt.Errorf("package manager produced no usable package: %w", err)}
	}
	if meta.Version != version {
		s.log.Warn("installed version differs from requested", "requested", version, "installed", meta.Version)
	}

	if err := replaceDir(staged, s.pkg.Dir(), filepath.Join(stagingRoot, backupName(s.pkg.Name))); err != nil {
		return &InstallError{Package: s.pkg.Name, Version: version, Err: err}
	}
	s.log.Verbose("package installed", "name", s.pkg.Name, "version", meta.Version, "dir", s.pkg.Dir())
	return nil
}

// Update reinstalls the package when the cached version differs from the
// target version. It is a no-op, leaving the artifact untouched, when the
// cache is already current.
func (s *Store) Update(ctx context.Context) error {
	version, err := s.resolveVersion(ctx)
	if err != nil {
		return err
	}

	cached, err := s.CachedVersion()
	if err != nil {
		s.log.Verbose("cached package unreadable, reinstalling", "name", s.pkg.Name, "error", err)
		return s.Install(ctx)
	}
	if cached == version {
		s.log.Verbose("package already current", "name", s.pkg.Name, "version", cached)
		return nil
	}

	s.log.Verbose("updating package", "name", s.pkg.Name, "from", cached, "to", version)
	return s.Install(ctx)
}

// resolveVersion pins the descriptor to a concrete version, querying the
// registry at most once per descriptor.
func (s *Store) resolveVersion(ctx context.Context) (string, error) {
	if !s.pkg.IsLatest() {
		return s.pkg.Version, nil
	}
	if s.resolver == nil {
		return "", fmt.Errorf("no version given for %s and no registry configured", s.pkg.Name)
	}
	v, err := s.resolver.ResolveLatest(ctx, s.pkg.Name, "")
	if err != nil {
		return "", err
	}
	s.pkg.Version = v
	return v, nil
}
