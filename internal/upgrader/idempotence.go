package upgrader

import (
	"sort"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// IdempotenceResult says whether matched files are already at the target.
type IdempotenceResult struct {
	AlreadyLatest bool
	MatchedFiles  []string
}

// EvaluateIdempotence reports the files with at least one replacement and
// whether none of the patches would change anything.
func EvaluateIdempotence(patches []entities.PatchResult) IdempotenceResult {
	seen := make(map[string]struct{})
	matched := make([]string, 0, len(patches))
	changed := false
	for _, patch := range patches {
		changed = changed || patch.Changed
		if len(patch.Replacements) == 0 {
			continue
		}
		if _, ok := seen[patch.File]; ok {
			continue
		}
		seen[patch.File] = struct{}{}
		matched = append(matched, patch.File)
	}
	sort.Strings(matched)

	return IdempotenceResult{
		AlreadyLatest: len(matched) > 0 && !changed,
		MatchedFiles:  matched,
	}
}
