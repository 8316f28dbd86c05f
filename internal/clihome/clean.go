package clihome

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmptyDir removes everything inside dir but keeps dir itself. It reports
// false without error when dir does not exist.
func EmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			return true, fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return true, nil
}

// CleanAll empties the whole CLI home.
func CleanAll(root string) (bool, error) {
	return EmptyDir(root)
}

// CleanDependencies empties only the package cache.
func CleanDependencies(root string) (bool, error) {
	return EmptyDir(DependenciesPath(root))
}
