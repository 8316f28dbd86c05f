package clihome

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

func TestCheck_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".devlink-cli")
	var out bytes.Buffer

	if n := Check(&out, root, false); n != 1 {
		t.Errorf("problems = %d, want 1", n)
	}
	if !strings.Contains(out.String(), "[MISS]") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if n := Check(&out, root, true); n != 0 {
		t.Errorf("problems after fix = %d, want 0\n%s", n, out.String())
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("root not created: %v", err)
	}
}

func TestCheck_HealthyCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(StorePath(root), "@devlink", "cli-init", "package.json"),
		`{"name":"@devlink/cli-init","version":"1.2.0"}`, 0644)
	writeFile(t, filepath.Join(StorePath(root), "left-pad", "package.json"),
		`{"name":"left-pad","version":"1.3.0"}`, 0644)
	writeFile(t, CredentialsPath(root), "token: x\n", 0600)

	var out bytes.Buffer
	if n := Check(&out, root, false); n != 0 {
		t.Fatalf("problems = %d, want 0\n%s", n, out.String())
	}
	for _, want := range []string{"@devlink/cli-init@1.2.0", "left-pad@1.3.0"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCheck_ReportsAndFixesLeftovers(t *testing.T) {
	root := t.TempDir()
	staging := filepath.Join(DependenciesPath(root), StagingDir, "devlink+cli-init@1.2.0")
	backup := filepath.Join(DependenciesPath(root), StagingDir, "devlink+cli-init"+BackupSuffix)
	writeFile(t, filepath.Join(staging, "package.json"), "{}", 0644)
	writeFile(t, filepath.Join(backup, "package.json"), "{}", 0644)

	var out bytes.Buffer
	if n := Check(&out, root, false); n != 2 {
		t.Errorf("problems = %d, want 2\n%s", n, out.String())
	}

	out.Reset()
	if n := Check(&out, root, true); n != 0 {
		t.Errorf("problems after fix = %d\n%s", n, out.String())
	}
	for _, p := range []string{staging, backup} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s not removed", p)
		}
	}
}

func TestCheck_CorruptPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(StorePath(root), "@devlink", "cli-init", "package.json"), `{"name":`, 0644)

	var out bytes.Buffer
	if n := Check(&out, root, true); n != 1 {
		t.Errorf("problems = %d, want 1\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "[FAIL] @devlink/cli-init") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCheck_CredentialPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not supported on windows")
	}
	root := t.TempDir()
	path := CredentialsPath(root)
	writeFile(t, path, "token: x\n", 0644)
	if err := os.Chmod(path, 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if n := Check(&out, root, false); n != 1 {
		t.Errorf("problems = %d, want 1", n)
	}
	if n := Check(&out, root, true); n != 0 {
		t.Errorf("problems after fix = %d", n)
	}
	info, _ := os.Stat(path)
	if perm := info.Mode().Perm(); perm != FilePermSecure {
		t.Errorf("permissions = %o", perm)
	}
}
