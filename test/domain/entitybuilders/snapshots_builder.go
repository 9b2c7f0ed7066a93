//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/versioning"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SnapshotsBuilder helps create offline snapshots with a fluent interface.
// By default it publishes v3.13.1 with runners on every platform.
type SnapshotsBuilder struct {
	*testkit.BaseBuilder
	tags         []entities.StableTag
	html         *string
	manifest     []entities.ManifestEntry
	releaseNotes map[string]string
}

// NewSnapshotsBuilder creates a new snapshots builder with sensible defaults.
func NewSnapshotsBuilder() *SnapshotsBuilder {
	b := &SnapshotsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.Reset()
	return b
}

// WithTags replaces the tag list with the given tag names.
func (b *SnapshotsBuilder) WithTags(names ...string) *SnapshotsBuilder {
	b.tags = []entities.StableTag{}
	for _, name := range names {
		if tag, _, ok := versioning.ParseTag(name, "sha-"+name); ok {
			b.tags = append(b.tags, tag)
		}
	}
	return b
}

// WithoutTags removes the tag snapshot.
func (b *SnapshotsBuilder) WithoutTags() *SnapshotsBuilder {
	b.tags = nil
	return b
}

// WithHTML sets the release index page.
func (b *SnapshotsBuilder) WithHTML(html string) *SnapshotsBuilder {
	b.html = &html
	return b
}

// WithRunners publishes version on the given manifest platforms.
func (b *SnapshotsBuilder) WithRunners(version string, platforms ...string) *SnapshotsBuilder {
	files := make([]entities.ManifestFile, 0, len(platforms))
	for _, platform := range platforms {
		files = append(files, entities.ManifestFile{Platform: platform})
	}
	b.manifest = append(b.manifest, entities.ManifestEntry{Version: version, Files: files})
	return b
}

// WithoutManifest removes the manifest snapshot.
func (b *SnapshotsBuilder) WithoutManifest() *SnapshotsBuilder {
	b.manifest = nil
	return b
}

// WithReleaseNotes adds notes for a tag or version key.
func (b *SnapshotsBuilder) WithReleaseNotes(key, notes string) *SnapshotsBuilder {
	if b.releaseNotes == nil {
		b.releaseNotes = map[string]string{}
	}
	b.releaseNotes[key] = notes
	return b
}

// Build creates the snapshots (satisfies testkit.Builder interface).
func (b *SnapshotsBuilder) Build() interface{} {
	return b.BuildSnapshots()
}

// BuildSnapshots creates the snapshots with a concrete return type.
func (b *SnapshotsBuilder) BuildSnapshots() *entities.Snapshots {
	return &entities.Snapshots{
		CPythonTags:    b.tags,
		PythonOrgHTML:  b.html,
		RunnerManifest: b.manifest,
		ReleaseNotes:   b.releaseNotes,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SnapshotsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.WithTags("v3.13.0", "v3.13.1", "v3.12.8")
	html := ""
	b.html = &html
	b.manifest = []entities.ManifestEntry{{Version: "3.13.1", Files: []entities.ManifestFile{
		{Platform: "linux-24.04"}, {Platform: "darwin"}, {Platform: "win32"},
	}}}
	b.releaseNotes = nil
	return b
}

// Clone creates a deep copy of the SnapshotsBuilder.
func (b *SnapshotsBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	clone.tags = append([]entities.StableTag(nil), b.tags...)
	clone.manifest = append([]entities.ManifestEntry(nil), b.manifest...)
	if b.releaseNotes != nil {
		clone.releaseNotes = make(map[string]string, len(b.releaseNotes))
		for key, notes := range b.releaseNotes {
			clone.releaseNotes[key] = notes
		}
	}
	return &clone
}
