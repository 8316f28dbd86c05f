package pkgstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeInstaller lays out <prefix>/node_modules/<name> the way npm would.
type fakeInstaller struct {
	calls   []string
	err     error
	produce bool
}

func newFakeInstaller() *fakeInstaller {
	return &fakeInstaller{produce: true}
}

func (f *fakeInstaller) Install(_ context.Context, prefix, spec string) error {
	f.calls = append(f.calls, spec)
	if f.err != nil {
		return f.err
	}
	if !f.produce {
		return nil
	}
	i := strings.LastIndex(spec, "@")
	name, version := spec[:i], spec[i+1:]
	dir := filepath.Join(prefix, "node_modules", filepath.FromSlash(name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	meta, _ := json.Marshal(map[string]string{"name": name, "version": version, "main": "index.js"})
	if err := os.WriteFile(filepath.Join(dir, "package.json"), meta, 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "index.js"), []byte("module.exports = () => '"+version+"';\n"), 0644)
}

type fakeResolver struct {
	version string
	err     error
	calls   int
}

func (f *fakeResolver) ResolveLatest(_ context.Context, _ string, _ string) (string, error) {
	f.calls++
	return f.version, f.err
}

func cachePackage(t *testing.T, root, version string) *Package {
	t.Helper()
	return &Package{
		Name:       "@devlink/cli-init",
		Version:    version,
		TargetPath: filepath.Join(root, "dependencies"),
		StorePath:  filepath.Join(root, "dependencies", "node_modules"),
	}
}

func writePackage(t *testing.T, dir, meta string, files map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(meta), 0644); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}
