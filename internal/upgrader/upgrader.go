package upgrader

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/scanner"
)

// RewriteContext asks for every occurrence of FromVersion in one file to be
// replaced with ToVersion.
type RewriteContext struct {
	File        string
	Content     string
	FromVersion string
	ToVersion   string
}

// IsNewerVersion compares two version strings and returns true if newVersion is newer.
func IsNewerVersion(currentVersion, newVersion string) bool {
	current := normalizeVersion(currentVersion)
	candidate := normalizeVersion(newVersion)

	if semver.IsValid(current) && semver.IsValid(candidate) {
		return semver.Compare(candidate, current) > 0
	}

	return newVersion > currentVersion
}

// SharesTrack reports whether two dotted versions have the same MAJOR.MINOR.
func SharesTrack(fromVersion, toVersion string) bool {
	from := strings.SplitN(strings.TrimPrefix(fromVersion, "v"), ".", 3) //nolint:mnd // MAJOR.MINOR.rest
	to := strings.SplitN(strings.TrimPrefix(toVersion, "v"), ".", 3)     //nolint:mnd // MAJOR.MINOR.rest
	if len(from) < 2 || len(to) < 2 {
		return false
	}
	return from[0] == to[0] && from[1] == to[1]
}

// ComputePatch re-scans the file and replaces the occurrences equal to
// FromVersion. Pairs that would jump tracks produce an unchanged result.
func ComputePatch(rewrite RewriteContext) entities.PatchResult {
	unchanged := entities.PatchResult{
		File:            rewrite.File,
		OriginalContent: rewrite.Content,
		UpdatedContent:  rewrite.Content,
		Replacements:    []entities.VersionOccurrence{},
		FromVersion:     rewrite.FromVersion,
		ToVersion:       rewrite.ToVersion,
	}
	if !SharesTrack(rewrite.FromVersion, rewrite.ToVersion) {
		return unchanged
	}

	var selected []entities.VersionOccurrence
	for _, occurrence := range scanner.FindVersionOccurrences(rewrite.File, rewrite.Content) {
		if occurrence.MatchedVersion == rewrite.FromVersion {
			selected = append(selected, occurrence)
		}
	}
	if len(selected) == 0 {
		return unchanged
	}

	result := ApplyOccurrences(rewrite.File, rewrite.Content, selected, rewrite.ToVersion)
	result.FromVersion = rewrite.FromVersion
	return result
}

// ApplyOccurrences substitutes toVersion at each occurrence's byte offset,
// working back-to-front so earlier offsets stay valid. Occurrences on another
// track, or whose bytes no longer hold the matched version, are dropped.
// Occurrences already at the target are reported as replacements but leave
// the content untouched.
func ApplyOccurrences(
	file, content string, occurrences []entities.VersionOccurrence, toVersion string,
) entities.PatchResult {
	matched := make([]entities.VersionOccurrence, 0, len(occurrences))
	for _, occurrence := range occurrences {
		if !SharesTrack(occurrence.MatchedVersion, toVersion) {
			continue
		}
		end := occurrence.ByteOffset + len(occurrence.MatchedVersion)
		if occurrence.ByteOffset < 0 || end > len(content) ||
			content[occurrence.ByteOffset:end] != occurrence.MatchedVersion {
			continue
		}
		matched = append(matched, occurrence)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ByteOffset < matched[j].ByteOffset
	})

	updated := content
	fromVersion := ""
	for i := len(matched) - 1; i >= 0; i-- {
		occurrence := matched[i]
		if occurrence.MatchedVersion == toVersion {
			continue
		}
		end := occurrence.ByteOffset + len(occurrence.MatchedVersion)
		updated = updated[:occurrence.ByteOffset] + toVersion + updated[end:]
		fromVersion = occurrence.MatchedVersion
	}
	if fromVersion == "" {
		fromVersion = toVersion
	}

	return entities.PatchResult{
		File:            file,
		OriginalContent: content,
		UpdatedContent:  updated,
		Changed:         updated != content,
		Replacements:    matched,
		FromVersion:     fromVersion,
		ToVersion:       toVersion,
	}
}

// PatchFile rewrites every distinct version found among occurrences to
// toVersion, one ComputePatch pass per source version.
func PatchFile(
	file, content string, occurrences []entities.VersionOccurrence, toVersion string,
) entities.PatchResult {
	// the at-target pass runs first so later rescans never see our own output
	var fromVersions []string
	seen := make(map[string]struct{})
	for _, occurrence := range occurrences {
		if occurrence.MatchedVersion == toVersion {
			fromVersions = []string{toVersion}
			seen[toVersion] = struct{}{}
			break
		}
	}
	for _, occurrence := range occurrences {
		if _, ok := seen[occurrence.MatchedVersion]; ok {
			continue
		}
		seen[occurrence.MatchedVersion] = struct{}{}
		fromVersions = append(fromVersions, occurrence.MatchedVersion)
	}

	result := entities.PatchResult{
		File:            file,
		OriginalContent: content,
		UpdatedContent:  content,
		Replacements:    []entities.VersionOccurrence{},
		FromVersion:     toVersion,
		ToVersion:       toVersion,
	}
	for _, fromVersion := range fromVersions {
		step := ComputePatch(RewriteContext{
			File:        file,
			Content:     result.UpdatedContent,
			FromVersion: fromVersion,
			ToVersion:   toVersion,
		})
		result.Replacements = append(result.Replacements, step.Replacements...)
		if !step.Changed {
			continue
		}
		if !result.Changed {
			result.FromVersion = fromVersion
		}
		result.UpdatedContent = step.UpdatedContent
		result.Changed = true
	}

	entities.SortOccurrences(result.Replacements)
	return result
}

// PatchAll patches each file that has occurrences, in file order. Files with
// no known content are skipped.
func PatchAll(
	contents map[string]string, occurrences []entities.VersionOccurrence, toVersion string,
) []entities.PatchResult {
	grouped := entities.GroupByFile(occurrences)
	files := entities.UniqueFiles(occurrences)

	patches := make([]entities.PatchResult, 0, len(files))
	for _, file := range files {
		content, ok := contents[file]
		if !ok {
			continue
		}
		patches = append(patches, PatchFile(file, content, grouped[file], toVersion))
	}
	return patches
}

func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
