package pkgstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devlink-labs/devlink/internal/clihome"
)

// replaceDir moves src into dst. An existing dst is renamed to backup first
// and restored if the move fails; it is deleted only after src is in place.
// backup must be on the same filesystem as dst.
func replaceDir(src, dst, backup string) error {
	if err := clihome.EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	if err := clihome.EnsureDir(filepath.Dir(backup)); err != nil {
		return err
	}

	if err := os.RemoveAll(backup); err != nil {
		return fmt.Errorf("clearing stale backup %s: %w", backup, err)
	}

	hadPrevious := false
	if _, err := os.Lstat(dst); err == nil {
		if err := os.Rename(dst, backup); err != nil {
			return fmt.Errorf("moving previous install aside: %w", err)
		}
		hadPrevious = true
	}

	if err := os.Rename(src, dst); err != nil {
		if hadPrevious {
			if rbErr := os.Rename(backup, dst); rbErr != nil {
				return fmt.Errorf("installing new package: %w (rollback failed: %v)", err, rbErr)
			}
		}
		return fmt.Errorf("installing new package: %w", err)
	}

	if hadPrevious {
		// Best effort; a leftover backup is cleared on the next install.
		_ = os.RemoveAll(backup)
	}
	return nil
}
