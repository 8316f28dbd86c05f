// Package manifest reads and validates the package.json of an installed
// command package. Validation runs against an embedded JSON schema so a
// corrupt or truncated artifact is rejected before its entry is resolved.
package manifest
