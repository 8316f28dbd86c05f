package dispatch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/devlink-labs/devlink/internal/logger"
	"github.com/devlink-labs/devlink/internal/pkgstore"
	"github.com/devlink-labs/devlink/internal/registry"
	"github.com/devlink-labs/devlink/internal/runtime"
)

// Request describes one delegated command.
type Request struct {
	// PackageName is the package implementing the command.
	PackageName string
	// LocalPath, when set, is a package checkout used as-is: no registry
	// query and no install or update.
	LocalPath string
	// Options are the command's own flags and arguments.
	Options map[string]any
}

// RuntimeFactory picks the runtime for an entry file.
type RuntimeFactory func(entry string) runtime.Runtime

// Options configures a Dispatcher.
type Options struct {
	// Home and CLIHome seed the global execution context.
	Home    string
	CLIHome string
	// Resolver answers latest-version queries. Required unless every
	// request carries a LocalPath.
	Resolver registry.Resolver
	// Installer fetches packages into the cache. Defaults to npm.
	Installer pkgstore.Installer
	// NewRuntime defaults to runtime.DispatchRuntime on the process's
	// standard streams.
	NewRuntime RuntimeFactory
	Log        *logger.Logger
}

// Dispatcher executes delegated commands.
type Dispatcher struct {
	cliHome    string
	global     ExecutionContext
	resolver   registry.Resolver
	installer  pkgstore.Installer
	newRuntime RuntimeFactory
	log        *logger.Logger
}

// New creates a Dispatcher. The global execution context is built here once
// and never changes afterwards.
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		cliHome:    opts.CLIHome,
		global:     NewExecutionContext(opts.Home, opts.CLIHome),
		resolver:   opts.Resolver,
		installer:  opts.Installer,
		newRuntime: opts.NewRuntime,
		log:        opts.Log,
	}
	if d.log == nil {
		d.log = logger.Discard()
	}
	if d.installer == nil {
		d.installer = &pkgstore.NpmInstaller{}
	}
	if d.newRuntime == nil {
		env := []string{branding.EnvVar("cli_home_path") + "=" + opts.CLIHome}
		d.newRuntime = func(entry string) runtime.Runtime {
			return runtime.DispatchRuntime(entry, runtime.Streams{}, env)
		}
	}
	return d
}

// Global returns the global execution context.
func (d *Dispatcher) Global() ExecutionContext {
	return d.global
}

// Dispatch runs req and returns the exit code the CLI should terminate with.
// The child's own code is returned verbatim with a nil error. Any failure
// before the child runs, or a failure to start it, returns 1 and the cause.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (int, error) {
	pkg, direct, err := d.prepare(ctx, req)
	if err != nil {
		return 1, err
	}

	entry, err := pkg.RootFilePath(direct)
	if err != nil {
		return 1, err
	}

	payload, err := d.global.Merge(req.Options).Marshal()
	if err != nil {
		return 1, err
	}

	d.log.Verbose("executing command package", "entry", entry, "runtime", runtime.Kind(entry))
	code, err := d.newRuntime(entry).Run(ctx, entry, payload)
	if err != nil {
		d.log.Verbose("command failed to start", "error", err)
		return 1, err
	}
	d.log.Verbose("command finished", "code", code)
	return code, nil
}

// prepare builds the descriptor for req and makes sure its artifact is in
// place. It reports whether the entry must be read from TargetPath.
func (d *Dispatcher) prepare(ctx context.Context, req Request) (*pkgstore.Package, bool, error) {
	if req.LocalPath != "" {
		dir, err := filepath.Abs(req.LocalPath)
		if err != nil {
			return nil, false, fmt.Errorf("resolving package path %s: %w", req.LocalPath, err)
		}
		d.log.Verbose("using local package", "name", req.PackageName, "path", dir)
		return &pkgstore.Package{
			Name:       req.PackageName,
			TargetPath: dir,
			StorePath:  dir,
		}, true, nil
	}

	if d.resolver == nil {
		return nil, false, fmt.Errorf("no registry configured to resolve %s", req.PackageName)
	}
	version, err := d.resolver.ResolveLatest(ctx, req.PackageName, "")
	if err != nil {
		return nil, false, err
	}
	d.log.Verbose("resolved package version", "name", req.PackageName, "version", version)

	pkg := &pkgstore.Package{
		Name:       req.PackageName,
		Version:    version,
		TargetPath: clihome.DependenciesPath(d.cliHome),
		StorePath:  clihome.StorePath(d.cliHome),
	}
	store := pkgstore.NewStore(pkg, d.installer, d.resolver, d.log)
	if store.Exists() {
		d.log.Notice("updating package", "name", pkg.Name)
		err = store.Update(ctx)
	} else {
		d.log.Notice("installing package", "name", pkg.Name, "version", version)
		err = store.Install(ctx)
	}
	if err != nil {
		return nil, false, err
	}
	return pkg, false, nil
}
