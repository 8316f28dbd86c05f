package pkgstore

import (
	"os"
	"path/filepath"

	"github.com/devlink-labs/devlink/internal/manifest"
)

// RootFilePath returns the absolute path of the package's entry file. With
// useTargetPathDirectly the package is read from TargetPath (a caller-supplied
// local checkout); otherwise from its directory inside the store.
func (p *Package) RootFilePath(useTargetPathDirectly bool) (string, error) {
	dir, read := p.Dir(), manifest.ReadDir
	if useTargetPathDirectly {
		dir, read = p.TargetPath, manifest.ReadLocalDir
	}

	meta, err := read(dir)
	if err != nil {
		return "", &EntryError{Package: p.Name, Path: filepath.Join(dir, manifest.FileName), Local: useTargetPathDirectly, Err: err}
	}

	declared := filepath.Join(dir, filepath.FromSlash(meta.EntryPath()))
	for _, candidate := range entryCandidates(declared) {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate, nil
			}
			return abs, nil
		}
	}
	return "", &EntryError{Package: p.Name, Path: declared, Local: useTargetPathDirectly}
}

// entryCandidates mirrors Node's lookup for an extensionless main.
func entryCandidates(path string) []string {
	if filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{
		path,
		path + ".js",
		filepath.Join(path, "index.js"),
	}
}
