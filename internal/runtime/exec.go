package runtime

import (
	"context"
	"os/exec"
)

// ExecRuntime runs the entry file itself as a program, for packages that
// ship a native binary or a script with a shebang.
type ExecRuntime struct {
	Streams
	// Env holds extra "KEY=VALUE" entries layered over the parent environment.
	Env []string
}

// Run executes `<entry> <payload>`. The child keeps the caller's working
// directory, so entry must be absolute.
func (r *ExecRuntime) Run(ctx context.Context, entry string, payload []byte) (int, error) {
	cmd := exec.CommandContext(ctx, entry, string(payload))
	cmd.Env = buildEnv(r.Env)
	r.Streams.apply(cmd)
	return run(cmd)
}
