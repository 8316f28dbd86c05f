// Package config manages user-level settings stored at <cliHome>/config.yaml.
// It provides functions to load, read, and write keys such as the npm registry
// used to resolve and install delegated command packages.
package config
