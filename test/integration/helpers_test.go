//go:build integration

package integration_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // $HOME for the run
	CLIHome    string // <HomeDir>/.devlink-cli
	OutputFile string // where test packages write the context they received
}

// setupTestEnv sandboxes HOME and the npm cache so nothing outside the test
// directory is touched.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	requireNode(t)

	home := t.TempDir()
	env := &testEnv{
		HomeDir:    home,
		CLIHome:    filepath.Join(home, ".devlink-cli"),
		OutputFile: filepath.Join(t.TempDir(), "context.json"),
	}
	t.Setenv("HOME", home)
	t.Setenv("npm_config_cache", filepath.Join(t.TempDir(), "npm-cache"))
	t.Setenv("npm_config_update_notifier", "false")
	return env
}

func requireNode(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"node", "npm"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available, skipping", bin)
		}
	}
}

// fakeRegistry is a minimal npm registry serving packuments and tarballs
// for packages published during the test.
type fakeRegistry struct {
	t        *testing.T
	srv      *httptest.Server
	mu       sync.Mutex
	versions map[string]map[string]json.RawMessage
	tarballs map[string][]byte
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	r := &fakeRegistry{
		t:        t,
		versions: map[string]map[string]json.RawMessage{},
		tarballs: map[string][]byte{},
	}
	r.srv = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.srv.Close)
	return r
}

func (r *fakeRegistry) URL() string { return r.srv.URL }

func (r *fakeRegistry) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := strings.TrimPrefix(req.URL.Path, "/")

	if data, ok := r.tarballs[path]; ok {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(data)
		return
	}

	versions, ok := r.versions[path]
	if !ok {
		http.NotFound(w, req)
		return
	}
	latest := ""
	for v := range versions {
		if v > latest {
			latest = v
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":      path,
		"dist-tags": map[string]string{"latest": latest},
		"versions":  versions,
	})
}

// publish adds name@version with the given files (paths relative to the
// package root). package.json is generated from main.
func (r *fakeRegistry) publish(name, version, main string, files map[string]string) {
	r.t.Helper()

	meta := map[string]any{"name": name, "version": version, "main": main}
	metaJSON, _ := json.Marshal(meta)

	all := map[string]string{"package.json": string(metaJSON)}
	for k, v := range files {
		all[k] = v
	}
	tgz := buildTarball(r.t, all)

	sha1sum := sha1.Sum(tgz)
	sha512sum := sha512.Sum512(tgz)
	tarPath := strings.ReplaceAll(name, "/", "-") + "-" + version + ".tgz"

	manifest := map[string]any{
		"name":    name,
		"version": version,
		"main":    main,
		"dist": map[string]string{
			"tarball":   r.srv.URL + "/" + tarPath,
			"shasum":    hex.EncodeToString(sha1sum[:]),
			"integrity": "sha512-" + base64.StdEncoding.EncodeToString(sha512sum[:]),
		},
	}
	raw, _ := json.Marshal(manifest)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.versions[name] == nil {
		r.versions[name] = map[string]json.RawMessage{}
	}
	r.versions[name][version] = raw
	r.tarballs[tarPath] = tgz
}

// buildTarball packs files under the "package/" prefix npm expects.
func buildTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		hdr := &tar.Header{
			Name: "package/" + name,
			Mode: 0644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("writing tar entry: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// entryScript returns a CommonJS entry that records its context in
// outputFile and exits with ctx.exitCode.
func entryScript(version, outputFile string) string {
	out, _ := json.Marshal(outputFile)
	return `const fs = require('fs');
module.exports = function (ctx) {
  fs.writeFileSync(` + string(out) + `, JSON.stringify(Object.assign({ version: '` + version + `' }, ctx)));
  process.exitCode = ctx.exitCode || 0;
};
`
}

func readContext(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading child output: %v", err)
	}
	var ctx map[string]any
	if err := json.Unmarshal(data, &ctx); err != nil {
		t.Fatalf("decoding child output %q: %v", data, err)
	}
	return ctx
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}
