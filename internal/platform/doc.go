// Package platform hides the few operating-system differences the CLI cares
// about: permission bits, which Windows ignores, and detecting a process
// running with root privileges.
package platform
