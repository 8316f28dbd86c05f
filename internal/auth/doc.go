// Package auth talks to the identity service behind login, logout and
// whoami. The session token is kept in the CLI home as a YAML file readable
// only by the current user.
package auth
