// Package cli defines the Cobra command tree for the devlink CLI. Each file
// registers one top-level command with the root command. Commands that are
// implemented by npm packages hand off to internal/dispatch; the rest talk
// to the config, auth and clihome packages directly.
package cli
