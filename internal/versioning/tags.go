package versioning

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// cpythonTagPattern matches release tags such as v3.13.1 and v3.14.0rc1.
var cpythonTagPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:(a|b|rc)(\d+))?$`)

// preReleaseNames maps CPython's pre-release markers to semver identifiers.
//
//nolint:gochecknoglobals // lookup table
var preReleaseNames = map[string]string{"a": "alpha", "b": "beta", "rc": "rc"}

// ParseTag parses a CPython release tag into a StableTag. Pre-release tags are
// returned with a semver-style version (3.14.0-rc.1) and prerelease == true.
// Tags that are not releases (branch markers, legacy names) report ok == false.
func ParseTag(tagName, commitSHA string) (tag entities.StableTag, prerelease bool, ok bool) {
	name := strings.TrimPrefix(strings.TrimSpace(tagName), "refs/tags/")
	match := cpythonTagPattern.FindStringSubmatch(name)
	if match == nil {
		return entities.StableTag{}, false, false
	}

	parts := make([]int, 3) //nolint:mnd // MAJOR.MINOR.PATCH
	for i := range parts {
		number, err := strconv.Atoi(match[i+1])
		if err != nil {
			return entities.StableTag{}, false, false
		}
		parts[i] = number
	}

	version := fmt.Sprintf("%d.%d.%d", parts[0], parts[1], parts[2])
	if match[4] != "" {
		prerelease = true
		version = fmt.Sprintf("%s-%s.%s", version, preReleaseNames[match[4]], match[5])
	}

	return entities.StableTag{
		TagName:   tagName,
		Version:   version,
		Major:     parts[0],
		Minor:     parts[1],
		Patch:     parts[2],
		CommitSHA: commitSHA,
	}, prerelease, true
}

// CompareVersions orders two dotted versions with semver precedence.
func CompareVersions(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

// SortTagsDescending orders tags from the newest version to the oldest.
func SortTagsDescending(tags []entities.StableTag) {
	sort.SliceStable(tags, func(i, j int) bool {
		return CompareVersions(tags[i].Version, tags[j].Version) > 0
	})
}

// LatestFromTags selects the highest version on track. Pre-release tags are
// considered only when includePrerelease is set. It returns nil when no tag
// belongs to the track.
func LatestFromTags(
	tags []entities.StableTag, track entities.Track, includePrerelease bool,
) *entities.ResolvedVersion {
	var latest *entities.StableTag
	for i := range tags {
		candidate := &tags[i]
		if candidate.Major != track.Major || candidate.Minor != track.Minor {
			continue
		}
		if !includePrerelease && IsPreRelease(candidate.Version) {
			continue
		}
		if latest == nil || CompareVersions(candidate.Version, latest.Version) > 0 {
			latest = candidate
		}
	}

	if latest == nil {
		return nil
	}
	return &entities.ResolvedVersion{
		Version:      latest.Version,
		SourceTag:    latest.TagName,
		SourceCommit: latest.CommitSHA,
	}
}

func canonical(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
