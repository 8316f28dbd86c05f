package clihome

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/devlink-labs/devlink/internal/manifest"
	"github.com/devlink-labs/devlink/internal/platform"
)

// Check validates the CLI home under root and prints one line per finding.
// When fix is true it repairs what it can. It returns the number of
// problems left unfixed.
func Check(w io.Writer, root string, fix bool) int {
	c := &checker{w: w, fix: fix}
	fmt.Fprintln(w, "CLI home check:")

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		c.report("MISS", "%s does not exist", root)
		if fix {
			if err := EnsureDir(root); err != nil {
				c.report("FAIL", "%v", err)
				return c.problems
			}
			c.fixed("Created %s", root)
		}
		return c.problems
	case err != nil:
		c.report("FAIL", "%s: %v", root, err)
		return c.problems
	case !info.IsDir():
		c.report("FAIL", "%s exists but is not a directory", root)
		return c.problems
	}
	c.ok("%s exists", root)

	c.checkCredentials(CredentialsPath(root))
	c.checkStaging(filepath.Join(DependenciesPath(root), StagingDir))
	c.checkStore(StorePath(root))
	return c.problems
}

type checker struct {
	w        io.Writer
	fix      bool
	problems int
}

func (c *checker) ok(format string, args ...any) {
	fmt.Fprintf(c.w, "  [ OK ] "+format+"\n", args...)
}

// report prints a problem and counts it until fixed.
func (c *checker) report(status, format string, args ...any) {
	fmt.Fprintf(c.w, "  [%-4s] "+format+"\n", append([]any{status}, args...)...)
	c.problems++
}

func (c *checker) fixed(format string, args ...any) {
	fmt.Fprintf(c.w, "  [FIX ] "+format+"\n", args...)
	c.problems--
}

func (c *checker) checkCredentials(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	perm := info.Mode().Perm()
	if perm == FilePermSecure {
		c.ok("%s (permissions %o)", path, perm)
		return
	}
	c.report("WARN", "%s has permissions %o (expected %o)", path, perm, FilePermSecure)
	if c.fix {
		if err := platform.Chmod(path, FilePermSecure); err != nil {
			fmt.Fprintf(c.w, "  [FAIL] Could not fix permissions on %s: %v\n", path, err)
			return
		}
		c.fixed("Fixed permissions on %s to %o", path, FilePermSecure)
	}
}

// checkStaging reports install prefixes left behind by interrupted installs.
func (c *checker) checkStaging(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		what := "staging directory"
		if strings.HasSuffix(e.Name(), BackupSuffix) {
			what = "update backup"
		}
		c.removeLeftover(filepath.Join(dir, e.Name()), what)
	}
}

// checkStore validates every cached package.
func (c *checker) checkStore(store string) {
	entries, err := os.ReadDir(store)
	if os.IsNotExist(err) {
		c.ok("no packages cached yet")
		return
	}
	if err != nil {
		c.report("FAIL", "%s: %v", store, err)
		return
	}

	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(store, e.Name())
		if !strings.HasPrefix(e.Name(), "@") {
			c.checkPackage(path, e.Name())
			continue
		}
		scoped, err := os.ReadDir(path)
		if err != nil {
			c.report("FAIL", "%s: %v", path, err)
			continue
		}
		for _, s := range scoped {
			if s.IsDir() {
				c.checkPackage(filepath.Join(path, s.Name()), e.Name()+"/"+s.Name())
			}
		}
	}
}

func (c *checker) checkPackage(dir, name string) {
	meta, err := manifest.ReadDir(dir)
	if err != nil {
		c.report("FAIL", "%s: %v", name, err)
		return
	}
	c.ok("%s@%s", meta.Name, meta.Version)
}

func (c *checker) removeLeftover(path, what string) {
	c.report("WARN", "leftover %s %s", what, path)
	if c.fix {
		if err := os.RemoveAll(path); err != nil {
			fmt.Fprintf(c.w, "  [FAIL] Could not remove %s: %v\n", path, err)
			return
		}
		c.fixed("Removed %s", path)
	}
}
