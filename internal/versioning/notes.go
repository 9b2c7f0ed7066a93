package versioning

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

// NotesLookup finds release notes for a resolved version, first in the
// snapshot map and then, when a live repository is set, over the network.
type NotesLookup struct {
	snapshot map[string]string
	live     repositories.ReleaseNotesRepository
}

// NewNotesLookup creates a lookup. Pass a nil live repository to stay offline.
func NewNotesLookup(snapshot map[string]string, live repositories.ReleaseNotesRepository) *NotesLookup {
	return &NotesLookup{snapshot: snapshot, live: live}
}

// NoteKeys returns the snapshot keys tried for a resolved version, in order.
func NoteKeys(resolved entities.ResolvedVersion) []string {
	keys := make([]string, 0, 3) //nolint:mnd // tag, v-prefixed and bare version
	for _, key := range []string{resolved.SourceTag, "v" + resolved.Version, resolved.Version} {
		if key == "" {
			continue
		}
		duplicate := false
		for _, existing := range keys {
			duplicate = duplicate || existing == key
		}
		if !duplicate {
			keys = append(keys, key)
		}
	}
	return keys
}

// Find returns the notes for resolved. found is false when neither the
// snapshot nor the live repository has them.
func (it *NotesLookup) Find(ctx context.Context, resolved entities.ResolvedVersion) (string, bool, error) {
	for _, key := range NoteKeys(resolved) {
		if notes, ok := it.snapshot[key]; ok {
			logger.Debugf("[notes] using snapshot notes for %s", key)
			return notes, true, nil
		}
	}

	if it.live == nil {
		return "", false, nil
	}

	tag := resolved.SourceTag
	if tag == "" {
		tag = "v" + resolved.Version
	}
	notes, found, err := it.live.GetReleaseNotes(ctx, tag)
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch release notes for %s: %w", tag, err)
	}
	return notes, found, nil
}

// NormalizeKeywords trims keywords and drops the empty ones.
func NormalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}

// MatchKeyword returns the first keyword found in notes, case-insensitively.
func MatchKeyword(notes string, keywords []string) (string, bool) {
	lowered := strings.ToLower(notes)
	for _, keyword := range keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return keyword, true
		}
	}
	return "", false
}
