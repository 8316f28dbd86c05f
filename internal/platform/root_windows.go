//go:build windows

package platform

// IsRoot always reports false on Windows, where elevation is not modelled
// as a uid.
func IsRoot() bool {
	return false
}
