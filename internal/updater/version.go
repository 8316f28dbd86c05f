package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// buildVersion parses the version stamped into the binary. Builds without a
// release version ("dev", "(devel)", a bare commit) report ok=false.
func buildVersion(v string) (*semver.Version, bool) {
	sv, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, false
	}
	return sv, true
}

// IsNewer reports whether candidate is a strictly greater semantic version
// than current. A leading "v" is tolerated on either side.
func IsNewer(current, candidate string) (bool, error) {
	cur, ok := buildVersion(current)
	if !ok {
		return false, fmt.Errorf("current version %q is not a release", current)
	}
	next, err := semver.NewVersion(strings.TrimPrefix(candidate, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing candidate version %q: %w", candidate, err)
	}
	return next.GreaterThan(cur), nil
}
