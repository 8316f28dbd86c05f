package pkgstore

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestRootFilePath_Cache(t *testing.T) {
	pkg := cachePackage(t, t.TempDir(), "1.0.0")
	writePackage(t, pkg.Dir(), `{"name":"@devlink/cli-init","version":"1.0.0","main":"lib/index.js"}`,
		map[string]string{"lib/index.js": "module.exports = () => {};"})

	got, err := pkg.RootFilePath(false)
	if err != nil {
		t.Fatalf("RootFilePath failed: %v", err)
	}
	want := filepath.Join(pkg.Dir(), "lib", "index.js")
	if got != want {
		t.Errorf("RootFilePath = %s, want %s", got, want)
	}
}

func TestRootFilePath_Direct(t *testing.T) {
	local := t.TempDir()
	writePackage(t, local, `{"name":"@devlink/cli-init","version":"0.0.0-dev","bin":"bin/run"}`,
		map[string]string{"bin/run": "#!/bin/sh\n"})

	pkg := &Package{Name: "@devlink/cli-init", TargetPath: local, StorePath: local}
	got, err := pkg.RootFilePath(true)
	if err != nil {
		t.Fatalf("RootFilePath failed: %v", err)
	}
	if got != filepath.Join(local, "bin", "run") {
		t.Errorf("RootFilePath = %s", got)
	}
}

func TestRootFilePath_ExtensionlessMain(t *testing.T) {
	pkg := cachePackage(t, t.TempDir(), "1.0.0")
	writePackage(t, pkg.Dir(), `{"name":"@devlink/cli-init","version":"1.0.0","main":"lib"}`,
		map[string]string{"lib/index.js": ""})

	got, err := pkg.RootFilePath(false)
	if err != nil {
		t.Fatalf("RootFilePath failed: %v", err)
	}
	if got != filepath.Join(pkg.Dir(), "lib", "index.js") {
		t.Errorf("RootFilePath = %s", got)
	}
}

func TestRootFilePath_MissingEntry(t *testing.T) {
	pkg := cachePackage(t, t.TempDir(), "1.0.0")
	writePackage(t, pkg.Dir(), `{"name":"@devlink/cli-init","version":"1.0.0","main":"gone.js"}`, nil)

	_, err := pkg.RootFilePath(false)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRootFilePath_MissingMetadata(t *testing.T) {
	pkg := cachePackage(t, t.TempDir(), "1.0.0")

	_, err := pkg.RootFilePath(false)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	var entryErr *EntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("expected *EntryError, got %T", err)
	}
}

func TestRootFilePath_InvalidMetadata(t *testing.T) {
	pkg := cachePackage(t, t.TempDir(), "1.0.0")
	writePackage(t, pkg.Dir(), `{"name":"@devlink/cli-init"}`, map[string]string{"index.js": ""})

	if _, err := pkg.RootFilePath(false); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRootFilePath_DirectMinimalMetadata(t *testing.T) {
	local := t.TempDir()
	writePackage(t, local, `{"name":"cli-init","main":"lib/index.js"}`,
		map[string]string{"lib/index.js": "module.exports = () => {};"})

	pkg := &Package{Name: "@devlink/cli-init", TargetPath: local, StorePath: local}
	got, err := pkg.RootFilePath(true)
	if err != nil {
		t.Fatalf("RootFilePath failed: %v", err)
	}
	if got != filepath.Join(local, "lib", "index.js") {
		t.Errorf("RootFilePath = %s", got)
	}
}

func TestRootFilePath_DirectMissingEntryIsLocal(t *testing.T) {
	local := t.TempDir()
	writePackage(t, local, `{"main":"gone.js"}`, nil)

	pkg := &Package{Name: "@devlink/cli-init", TargetPath: local, StorePath: local}
	_, err := pkg.RootFilePath(true)
	var entryErr *EntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("expected *EntryError, got %v", err)
	}
	if !entryErr.Local {
		t.Error("EntryError.Local = false for a local checkout")
	}
}
