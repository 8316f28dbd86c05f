package registry

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SelectLatest returns the greatest stable version in versions. Prereleases
// are only considered when no stable version exists, in which case the
// registry's latest dist-tag wins if it parses.
func SelectLatest(versions []string, latestTag string) (string, error) {
	var best, bestPre *semver.Version
	var bestRaw, bestPreRaw string

	for _, raw := range versions {
		v, err := parseSemver(raw)
		if err != nil {
			continue
		}
		if v.Prerelease() != "" {
			if bestPre == nil || v.GreaterThan(bestPre) {
				bestPre, bestPreRaw = v, raw
			}
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, raw
		}
	}

	if best != nil {
		return bestRaw, nil
	}
	if latestTag != "" {
		if _, err := parseSemver(latestTag); err == nil {
			return latestTag, nil
		}
	}
	if bestPre != nil {
		return bestPreRaw, nil
	}
	return "", fmt.Errorf("no valid semver versions published")
}

// SelectNewer returns the greatest version strictly newer than current, or
// current when nothing newer is published.
func SelectNewer(versions []string, current string) (string, error) {
	cur, err := parseSemver(current)
	if err != nil {
		return "", fmt.Errorf("parsing current version %q: %w", current, err)
	}
	constraint, err := semver.NewConstraint("> " + cur.String())
	if err != nil {
		return "", fmt.Errorf("building constraint for %q: %w", current, err)
	}

	var best *semver.Version
	bestRaw := current
	for _, raw := range versions {
		v, err := parseSemver(raw)
		if err != nil || !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, raw
		}
	}
	return bestRaw, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}
