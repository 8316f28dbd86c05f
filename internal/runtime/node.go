package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/devlink-labs/devlink/internal/branding"
)

// MinNodeVersion is the oldest Node.js release able to run command packages.
const MinNodeVersion = "14.0.0"

// nodeBootstrap loads the entry module and calls its default export with the
// decoded context. process.argv is [node, entry, payload] under -e.
const nodeBootstrap = `const { pathToFileURL } = require('url');
const entry = process.argv[1];
const ctx = JSON.parse(process.argv[2] || '{}');
import(pathToFileURL(entry).href)
  .then((m) => {
    const fn = (m.default && m.default.default) || m.default || m;
    if (typeof fn !== 'function') {
      throw new Error(entry + ' does not export a function');
    }
    return fn(ctx);
  })
  .catch((err) => {
    console.error((err && err.stack) || err);
    process.exit(1);
  });`

// NodeVersionError is returned when the installed node is older than
// MinNodeVersion.
type NodeVersionError struct {
	Found    string
	Required string
}

func (e *NodeVersionError) Error() string {
	return fmt.Sprintf("node %s is installed but %s requires at least v%s", e.Found, branding.CLIName(), e.Required)
}

// NodeRuntime executes JavaScript entries with the host node binary.
type NodeRuntime struct {
	Streams
	// Env holds extra "KEY=VALUE" entries layered over the parent environment.
	Env []string
	// MinVersion overrides MinNodeVersion when set.
	MinVersion string
}

// Run checks the node version, then invokes the entry's default export with
// the decoded payload.
func (n *NodeRuntime) Run(ctx context.Context, entry string, payload []byte) (int, error) {
	minimum := n.MinVersion
	if minimum == "" {
		minimum = MinNodeVersion
	}
	nodeBin, _, err := DetectNode(ctx, minimum)
	if err != nil {
		return 1, err
	}

	cmd := exec.CommandContext(ctx, nodeBin, "-e", nodeBootstrap, entry, string(payload))
	cmd.Env = buildEnv(n.Env)
	n.Streams.apply(cmd)
	return run(cmd)
}

// DetectNode locates node on PATH and checks that it is at least minimum.
// It returns the binary path and the reported version.
func DetectNode(ctx context.Context, minimum string) (string, string, error) {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return "", "", &SpawnError{Program: "node", Err: err}
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, nodeBin, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nodeBin, "", &SpawnError{Program: nodeBin, Err: err}
	}
	version := strings.TrimSpace(out.String())
	return nodeBin, version, checkNodeVersion(version, minimum)
}

// checkNodeVersion compares `node --version` output (e.g. "v18.17.0")
// against the minimum.
func checkNodeVersion(output, minimum string) error {
	found := strings.TrimSpace(output)
	v, err := semver.NewVersion(found)
	if err != nil {
		return fmt.Errorf("parsing node version %q: %w", found, err)
	}
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum node version %q: %w", minimum, err)
	}
	if !c.Check(v) {
		return &NodeVersionError{Found: found, Required: minimum}
	}
	return nil
}
