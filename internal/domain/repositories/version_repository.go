package repositories

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// TagRepository lists tagged CPython releases, sorted descending by version.
type TagRepository interface {
	ListStableTags(ctx context.Context, includePrerelease bool) ([]entities.StableTag, error)
}

// ReleaseIndexRepository fetches the HTML listing of published source releases.
type ReleaseIndexRepository interface {
	FetchReleaseIndex(ctx context.Context) (string, error)
}

// RunnerManifestRepository fetches the hosted-runner versions manifest.
type RunnerManifestRepository interface {
	FetchManifest(ctx context.Context) ([]entities.ManifestEntry, error)
}

// ReleaseNotesRepository fetches the notes published for a release tag.
// A missing release is reported as found == false, not as an error.
type ReleaseNotesRepository interface {
	GetReleaseNotes(ctx context.Context, tag string) (notes string, found bool, err error)
}
