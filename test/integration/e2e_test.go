//go:build integration

package integration_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/devlink-labs/devlink/internal/dispatch"
	"github.com/devlink-labs/devlink/internal/logger"
	"github.com/devlink-labs/devlink/internal/pkgstore"
	"github.com/devlink-labs/devlink/internal/registry"
	"github.com/devlink-labs/devlink/internal/updater"
)

const initPackage = "@devlink/cli-init"

func newDispatcher(env *testEnv, reg *fakeRegistry) *dispatch.Dispatcher {
	return dispatch.New(dispatch.Options{
		Home:      env.HomeDir,
		CLIHome:   env.CLIHome,
		Resolver:  registry.New(reg.URL()),
		Installer: &pkgstore.NpmInstaller{Registry: reg.URL()},
		Log:       logger.Discard(),
	})
}

// TestDispatchInstallThenUpdate covers a first run against an empty cache,
// a repeat run with nothing new published, and a run after a new release.
func TestDispatchInstallThenUpdate(t *testing.T) {
	env := setupTestEnv(t)
	reg := newFakeRegistry(t)
	reg.publish(initPackage, "1.2.0", "index.js", map[string]string{
		"index.js": entryScript("1.2.0", env.OutputFile),
	})
	d := newDispatcher(env, reg)
	ctx := context.Background()

	// Step 1: empty cache installs 1.2.0 and runs it.
	code, err := d.Dispatch(ctx, dispatch.Request{
		PackageName: initPackage,
		Options:     map[string]any{"type": "project", "force": true},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	pkgDir := filepath.Join(env.CLIHome, "dependencies", "node_modules", "@devlink", "cli-init")
	assertFileExists(t, filepath.Join(pkgDir, "package.json"))

	got := readContext(t, env.OutputFile)
	if got["version"] != "1.2.0" || got["type"] != "project" || got["force"] != true {
		t.Errorf("child context = %v", got)
	}
	if got["cliHome"] != env.CLIHome || got["home"] != env.HomeDir {
		t.Errorf("global config missing from child context: %v", got)
	}

	// Step 2: a newer release is picked up on the next dispatch.
	reg.publish(initPackage, "1.3.0", "index.js", map[string]string{
		"index.js": entryScript("1.3.0", env.OutputFile),
	})
	if code, err := d.Dispatch(ctx, dispatch.Request{PackageName: initPackage}); err != nil || code != 0 {
		t.Fatalf("Dispatch after release = %d, %v", code, err)
	}
	if got := readContext(t, env.OutputFile); got["version"] != "1.3.0" {
		t.Errorf("expected updated package to run, got version %v", got["version"])
	}
}

func TestDispatchPropagatesExitCode(t *testing.T) {
	env := setupTestEnv(t)
	reg := newFakeRegistry(t)
	reg.publish(initPackage, "1.0.0", "index.js", map[string]string{
		"index.js": entryScript("1.0.0", env.OutputFile),
	})

	code, err := newDispatcher(env, reg).Dispatch(context.Background(), dispatch.Request{
		PackageName: initPackage,
		Options:     map[string]any{"exitCode": 42},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if code != 42 {
		t.Errorf("exit code = %d, want 42", code)
	}
}

func TestDispatchUnknownPackage(t *testing.T) {
	env := setupTestEnv(t)
	reg := newFakeRegistry(t)

	code, err := newDispatcher(env, reg).Dispatch(context.Background(), dispatch.Request{PackageName: "@devlink/cli-missing"})
	if code != 1 || err == nil {
		t.Fatalf("Dispatch = %d, %v; want 1 and an error", code, err)
	}
}

// TestSelfUpdateCheckDoesNotBlockDispatch runs the update check against a
// registry that is down, then dispatches normally.
func TestSelfUpdateCheckDoesNotBlockDispatch(t *testing.T) {
	env := setupTestEnv(t)
	reg := newFakeRegistry(t)
	reg.publish(initPackage, "1.0.0", "index.js", map[string]string{
		"index.js": entryScript("1.0.0", env.OutputFile),
	})

	down := registry.New("http://127.0.0.1:1")
	if _, ok := updater.New(down).CheckSelfUpdate(context.Background(), "1.0.0"); ok {
		t.Fatal("update reported from an unreachable registry")
	}

	code, err := newDispatcher(env, reg).Dispatch(context.Background(), dispatch.Request{PackageName: initPackage})
	if err != nil || code != 0 {
		t.Fatalf("Dispatch = %d, %v", code, err)
	}
}
