package pkgstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Installer fetches a package spec ("name@version") into prefix so that it
// lands at <prefix>/node_modules/<name> with its own dependencies nested
// beneath it.
type Installer interface {
	Install(ctx context.Context, prefix, spec string) error
}

// NpmInstaller installs packages with the host npm.
type NpmInstaller struct {
	// Registry is passed as --registry when set.
	Registry string
	// Stdout receives npm's progress output; defaults to discarding it.
	Stdout io.Writer
}

// Install runs `npm install <spec> --prefix <prefix>` with a layout that
// keeps every dependency under the package's own directory, so the package
// can be moved as one directory.
func (n *NpmInstaller) Install(ctx context.Context, prefix, spec string) error {
	npmPath, err := exec.LookPath("npm")
	if err != nil {
		return fmt.Errorf("npm not found on PATH: %w", err)
	}
	version, err := NpmVersion(ctx, npmPath)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, npmPath, installArgs(version, prefix, spec, n.Registry)...)
	cmd.Dir = prefix

	stdout := n.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if tail := lastLines(stderr.String(), 5); tail != "" {
			return fmt.Errorf("npm install %s: %w\n%s", spec, err, tail)
		}
		return fmt.Errorf("npm install %s: %w", spec, err)
	}
	return nil
}

// NpmVersion reports the version of the npm binary at npmPath.
func NpmVersion(ctx context.Context, npmPath string) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, npmPath, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("running npm --version: %w", err)
	}
	raw := strings.TrimSpace(string(out))
	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing npm version %q: %w", raw, err)
	}
	return v, nil
}

func installArgs(npm *semver.Version, prefix, spec, registry string) []string {
	args := []string{
		"install", spec,
		"--prefix", prefix,
		nestedLayoutFlag(npm),
		"--no-save",
		"--no-package-lock",
		"--no-audit",
		"--no-fund",
	}
	if registry != "" {
		args = append(args, "--registry", registry)
	}
	return args
}

// nestedLayoutFlag returns the option that stops npm from hoisting the
// package's dependencies beside it. npm ignores unknown options, so each
// major line needs the spelling it understands.
func nestedLayoutFlag(npm *semver.Version) string {
	switch {
	case npm.Major() >= 9:
		return "--install-strategy=nested"
	case npm.Major() >= 7:
		return "--global-style"
	default:
		return "--legacy-bundling"
	}
}

// lastLines returns the final n non-empty lines of s.
func lastLines(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
