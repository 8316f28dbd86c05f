package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runtime executes an entry file in a separate process.
type Runtime interface {
	// Run spawns entry with payload as its sole argument and waits for it.
	// A child that starts and exits, with any code, yields (code, nil).
	// Failing to start the child yields (1, *SpawnError).
	Run(ctx context.Context, entry string, payload []byte) (int, error)
}

// Streams are the standard streams handed to the child. Nil fields fall
// back to the parent's own streams.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s Streams) apply(cmd *exec.Cmd) {
	cmd.Stdin = s.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = s.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
}

// SpawnError means the child process could not be started.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Program, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SpawnError) Unwrap() error { return e.Err }

// Supported runtime identifiers.
const (
	RuntimeNode = "node"
	RuntimeExec = "exec"
)

// Kind returns the runtime identifier for an entry file.
func Kind(entry string) string {
	switch strings.ToLower(filepath.Ext(entry)) {
	case ".js", ".cjs", ".mjs":
		return RuntimeNode
	default:
		return RuntimeExec
	}
}

// DispatchRuntime returns the Runtime able to execute entry, wired to the
// given streams and extra environment ("KEY=VALUE" entries).
func DispatchRuntime(entry string, streams Streams, env []string) Runtime {
	switch Kind(entry) {
	case RuntimeNode:
		return &NodeRuntime{Streams: streams, Env: env}
	default:
		return &ExecRuntime{Streams: streams, Env: env}
	}
}

// run starts cmd and translates its outcome into an exit code.
func run(cmd *exec.Cmd) (int, error) {
	if err := cmd.Start(); err != nil {
		return 1, &SpawnError{Program: cmd.Path, Err: err}
	}
	return exitCode(cmd.Wait())
}

// exitCode maps the result of Wait to the code the parent should exit with.
// A child killed by a signal has no code of its own and maps to 1.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return 1, nil
	}
	return 1, fmt.Errorf("waiting for child process: %w", err)
}

// buildEnv overlays extra "KEY=VALUE" entries onto the parent environment.
func buildEnv(extra []string) []string {
	env := os.Environ()
	for _, kv := range extra {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env = setEnv(env, key, value)
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
