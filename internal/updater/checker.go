package updater

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/devlink-labs/devlink/internal/branding"
	"github.com/devlink-labs/devlink/internal/logger"
	"github.com/devlink-labs/devlink/internal/registry"
)

// DefaultTimeout bounds the registry query made by CheckSelfUpdate.
const DefaultTimeout = 3 * time.Second

// Checker compares the running version with the newest published release.
type Checker struct {
	resolver    registry.Resolver
	packageName string
	out         io.Writer
	log         *logger.Logger
	timeout     time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithOutput sets where the update warning is written. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.out = w
	}
}

// WithLogger sets the logger used for verbose diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Checker) {
		c.log = l
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.timeout = d
	}
}

// WithPackage overrides the package name checked, which defaults to the
// CLI's own npm name.
func WithPackage(name string) Option {
	return func(c *Checker) {
		c.packageName = name
	}
}

// New creates a Checker that queries resolver.
func New(resolver registry.Resolver, opts ...Option) *Checker {
	c := &Checker{
		resolver:    resolver,
		packageName: branding.NPMName(),
		out:         os.Stderr,
		log:         logger.Discard(),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckSelfUpdate prints a warning when a release newer than current
// exists and returns that release. Every failure is logged at verbose level
// and reported as "no update".
func (c *Checker) CheckSelfUpdate(ctx context.Context, current string) (string, bool) {
	if _, ok := buildVersion(current); !ok {
		c.log.Verbose("skipping update check for unversioned build", "version", current)
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	latest, err := c.resolver.ResolveLatest(ctx, c.packageName, strings.TrimPrefix(current, "v"))
	if err != nil {
		c.log.Verbose("update check failed", "package", c.packageName, "error", err)
		return "", false
	}

	newer, err := IsNewer(current, latest)
	if err != nil {
		c.log.Verbose("update check returned an unusable version", "version", latest, "error", err)
		return "", false
	}
	if !newer {
		c.log.Verbose("cli is up to date", "version", current)
		return "", false
	}

	PrintUpdateWarning(c.out, c.packageName, current, latest)
	return latest, true
}

var (
	warnTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	warnBody  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	warnCmd   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)
)

// PrintUpdateWarning writes the upgrade notice to w.
func PrintUpdateWarning(w io.Writer, packageName, current, latest string) {
	body := lipgloss.JoinVertical(lipgloss.Left,
		warnTitle.Render(fmt.Sprintf("Update available: %s -> %s", current, latest)),
		warnBody.Render("Run ")+warnCmd.Render("npm install -g "+packageName)+warnBody.Render(" to upgrade"),
	)
	fmt.Fprintln(w, warnBox.Render(body))
}
