// Package runtime spawns a resolved package entry as a child process and
// reports its exit code. NodeRuntime loads JavaScript entries through a small
// node bootstrap; ExecRuntime executes anything else directly. DispatchRuntime
// picks one from the entry's file extension.
package runtime
