// Package dispatch runs one delegated command end to end: resolve the newest
// version of the implementing package, install or update it in the CLI
// cache, locate its entry file, and execute it in a child process whose exit
// code becomes the command's exit code.
package dispatch
