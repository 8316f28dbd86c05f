package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadDir reads and validates <dir>/package.json.
func ReadDir(dir string) (*PackageJSON, error) {
	return ReadFile(filepath.Join(dir, FileName))
}

// ReadFile reads, validates, and decodes a package.json file.
func ReadFile(path string) (*PackageJSON, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// ReadLocalDir reads <dir>/package.json of a local checkout, which needs
// neither a version nor a publishable name.
func ReadLocalDir(dir string) (*PackageJSON, error) {
	path := filepath.Join(dir, FileName)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLocal(data, path)
}

// Parse validates data against the installed-package schema and decodes it.
// The path is only used in error messages.
func Parse(data []byte, path string) (*PackageJSON, error) {
	return parse(Validate, data, path)
}

// ParseLocal is Parse with the relaxed rules of ValidateLocal.
func ParseLocal(data []byte, path string) (*PackageJSON, error) {
	return parse(ValidateLocal, data, path)
}

func parse(validate func([]byte) ([]Issue, error), data []byte, path string) (*PackageJSON, error) {
	issues, err := validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &InvalidError{Path: path, Issues: issues}
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pkg, nil
}

// InvalidError reports schema violations in a package.json.
type InvalidError struct {
	Path   string
	Issues []Issue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.String())
	}
	return fmt.Sprintf("invalid package metadata %s: %s", e.Path, strings.Join(parts, "; "))
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
