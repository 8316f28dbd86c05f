// Package clihome resolves the CLI home directory (~/.devlink-cli by default,
// overridable with CLI_HOME) and the package cache laid out beneath it. It also
// implements the cache-clearing helpers behind `devlink clean` and the health
// check behind `devlink doctor`.
package clihome
