package versioning

import (
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// cpythonPreRelease matches CPython's own pre-release spelling (3.14.0rc1).
var cpythonPreRelease = regexp.MustCompile(`^v?\d+\.\d+\.\d+(?:a|b|rc)\d+$`)

// IsPreRelease reports whether version carries pre-release identifiers.
// Unparseable versions are not considered pre-releases.
func IsPreRelease(version string) bool {
	if cpythonPreRelease.MatchString(version) {
		return true
	}

	parsed, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return parsed.Prerelease() != ""
}

// EnforcePreReleaseGuard blocks pre-release targets unless they were asked
// for. A nil version has nothing to guard and is allowed.
func EnforcePreReleaseGuard(includePrerelease bool, version *string) entities.GateResult {
	if version == nil || includePrerelease {
		return entities.Allow()
	}
	if IsPreRelease(*version) {
		return entities.Block(entities.SkipPreReleaseGuarded, map[string]any{"version": *version})
	}
	return entities.Allow()
}
