package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/devlink-labs/devlink/internal/clihome"
	"github.com/devlink-labs/devlink/internal/platform"
)

// session is the on-disk form of credentials.yaml.
type session struct {
	Token    string    `yaml:"token"`
	Username string    `yaml:"username,omitempty"`
	Server   string    `yaml:"server,omitempty"`
	SavedAt  time.Time `yaml:"saved_at"`
}

func loadSession(path string) (*session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	var s session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing credentials %s: %w", path, err)
	}
	if s.Token == "" {
		return nil, ErrUnauthenticated
	}
	return &s, nil
}

func saveSession(path string, s *session) error {
	if err := clihome.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	return platform.WriteFileSecure(path, data, clihome.FilePermSecure)
}

func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
