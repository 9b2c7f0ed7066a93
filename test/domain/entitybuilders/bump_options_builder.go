//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pybump/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// BumpOptionsBuilder helps create pipeline options with a fluent interface.
// Defaults describe an offline dry run with every snapshot present.
type BumpOptionsBuilder struct {
	*testkit.BaseBuilder
	workspace         string
	track             string
	includePrerelease bool
	paths             []string
	dryRun            bool
	allowPRCreation   bool
	noNetworkFallback bool
	securityKeywords  []string
	snapshots         *entities.Snapshots
	token             string
	repository        *entities.Repository
	defaultBranch     string
	changelog         bool
}

// NewBumpOptionsBuilder creates a new builder with sensible defaults.
func NewBumpOptionsBuilder() *BumpOptionsBuilder {
	b := &BumpOptionsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.Reset()
	return b
}

// WithWorkspace sets the workspace root.
func (b *BumpOptionsBuilder) WithWorkspace(workspace string) *BumpOptionsBuilder {
	b.workspace = workspace
	return b
}

// WithTrack sets the requested track.
func (b *BumpOptionsBuilder) WithTrack(track string) *BumpOptionsBuilder {
	b.track = track
	return b
}

// WithIncludePrerelease allows pre-release targets.
func (b *BumpOptionsBuilder) WithIncludePrerelease(include bool) *BumpOptionsBuilder {
	b.includePrerelease = include
	return b
}

// WithPaths sets the include globs.
func (b *BumpOptionsBuilder) WithPaths(paths ...string) *BumpOptionsBuilder {
	b.paths = paths
	return b
}

// WithDryRun sets the dry-run flag.
func (b *BumpOptionsBuilder) WithDryRun(dryRun bool) *BumpOptionsBuilder {
	b.dryRun = dryRun
	return b
}

// WithAllowPRCreation sets whether the write phase may run.
func (b *BumpOptionsBuilder) WithAllowPRCreation(allow bool) *BumpOptionsBuilder {
	b.allowPRCreation = allow
	return b
}

// WithNoNetworkFallback sets the offline flag.
func (b *BumpOptionsBuilder) WithNoNetworkFallback(offline bool) *BumpOptionsBuilder {
	b.noNetworkFallback = offline
	return b
}

// WithSecurityKeywords sets the security gate keywords.
func (b *BumpOptionsBuilder) WithSecurityKeywords(keywords ...string) *BumpOptionsBuilder {
	b.securityKeywords = keywords
	return b
}

// WithSnapshots replaces the snapshots; nil removes them.
func (b *BumpOptionsBuilder) WithSnapshots(snapshots *entities.Snapshots) *BumpOptionsBuilder {
	b.snapshots = snapshots
	return b
}

// WithToken sets the forge token.
func (b *BumpOptionsBuilder) WithToken(token string) *BumpOptionsBuilder {
	b.token = token
	return b
}

// WithRepository sets the owner/repo slug target.
func (b *BumpOptionsBuilder) WithRepository(owner, name string) *BumpOptionsBuilder {
	b.repository = entities.NewRepository(owner, name)
	return b
}

// WithDefaultBranch sets the PR base branch.
func (b *BumpOptionsBuilder) WithDefaultBranch(branch string) *BumpOptionsBuilder {
	b.defaultBranch = branch
	return b
}

// WithChangelog enables the CHANGELOG.md entry.
func (b *BumpOptionsBuilder) WithChangelog(enabled bool) *BumpOptionsBuilder {
	b.changelog = enabled
	return b
}

// Build creates the options (satisfies testkit.Builder interface).
func (b *BumpOptionsBuilder) Build() interface{} {
	return b.BuildOptions()
}

// BuildOptions creates the options with a concrete return type.
func (b *BumpOptionsBuilder) BuildOptions() entities.BumpOptions {
	return entities.BumpOptions{
		Workspace:         b.workspace,
		Track:             b.track,
		IncludePrerelease: b.includePrerelease,
		Paths:             b.paths,
		DryRun:            b.dryRun,
		AllowPRCreation:   b.allowPRCreation,
		NoNetworkFallback: b.noNetworkFallback,
		SecurityKeywords:  b.securityKeywords,
		Snapshots:         b.snapshots,
		Token:             b.token,
		Repository:        b.repository,
		DefaultBranch:     b.defaultBranch,
		Changelog:         b.changelog,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *BumpOptionsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.workspace = "/workspace"
	b.track = ""
	b.includePrerelease = false
	b.paths = nil
	b.dryRun = true
	b.allowPRCreation = false
	b.noNetworkFallback = true
	b.securityKeywords = nil
	b.snapshots = NewSnapshotsBuilder().BuildSnapshots()
	b.token = ""
	b.repository = nil
	b.defaultBranch = ""
	b.changelog = false
	return b
}

// Clone creates a deep copy of the BumpOptionsBuilder.
func (b *BumpOptionsBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	clone.paths = append([]string(nil), b.paths...)
	clone.securityKeywords = append([]string(nil), b.securityKeywords...)
	if b.repository != nil {
		repository := *b.repository
		clone.repository = &repository
	}
	return &clone
}
