// Package registry resolves package versions against an npm-compatible
// registry. Every lookup is a fresh network query; nothing is cached across
// invocations.
package registry
