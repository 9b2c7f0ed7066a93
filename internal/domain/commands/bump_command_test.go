//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pybump/internal/domain/commands"
	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pybump/internal/infrastructure/repositories"
	"github.com/rios0rios0/pybump/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/pybump/test/infrastructure/repositorydoubles"
)

type bumpFixture struct {
	files    *doubles.SpyFileRepository
	forge    *doubles.SpyForgeRepository
	git      *doubles.SpyGitRepository
	index    *doubles.StubReleaseIndexRepository
	manifest *doubles.StubRunnerManifestRepository
}

func newBumpFixture(files map[string]string) *bumpFixture {
	return &bumpFixture{
		files:    doubles.NewSpyFileRepository(files),
		forge:    &doubles.SpyForgeRepository{ForgeName: "github"},
		git:      &doubles.SpyGitRepository{Branch: "main"},
		index:    &doubles.StubReleaseIndexRepository{},
		manifest: &doubles.StubRunnerManifestRepository{},
	}
}

func (f *bumpFixture) command() *commands.BumpCommand {
	registry := infraRepos.NewForgeRegistry()
	registry.Register("github", func(_ string) repositories.ForgeRepository { return f.forge })
	return commands.NewBumpCommand(f.files, registry, f.index, f.manifest, f.git)
}

func (f *bumpFixture) commandWithoutGit() *commands.BumpCommand {
	registry := infraRepos.NewForgeRegistry()
	registry.Register("github", func(_ string) repositories.ForgeRepository { return f.forge })
	return commands.NewBumpCommand(f.files, registry, f.index, f.manifest, nil)
}

func dockerAndRuntime() map[string]string {
	return map[string]string{
		"Dockerfile":  "# base image\nFROM python:3.13.0-slim\nRUN pip install -r requirements.txt\n",
		"runtime.txt": "python-3.13.0\n",
	}
}

func TestBumpCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should report the files that would change under dry-run", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
		assert.Equal(t, "3.13.1", outcome.NewVersion)
		assert.Equal(t, []string{"Dockerfile", "runtime.txt"}, outcome.FilesChanged)
		assert.True(t, outcome.DryRun)
		assert.Empty(t, fixture.files.Written)
		assert.Empty(t, fixture.git.CommitInputs)
	})

	t.Run("should treat a run without PR creation as a dry run", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().WithDryRun(false).WithAllowPRCreation(false).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.True(t, outcome.DryRun)
		assert.Empty(t, fixture.files.Written)
	})

	t.Run("should rewrite files in place and stop when no token is available", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().WithDryRun(false).WithAllowPRCreation(true).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
		assert.False(t, outcome.DryRun)
		assert.Equal(t, "# base image\nFROM python:3.13.1-slim\nRUN pip install -r requirements.txt\n",
			fixture.files.Written["Dockerfile"])
		assert.Equal(t, "python-3.13.1\n", fixture.files.Written["runtime.txt"])
		assert.Empty(t, fixture.git.CommitInputs)
		assert.Nil(t, outcome.PullRequest)
	})

	t.Run("should succeed without side effects when the git capability is absent", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.commandWithoutGit().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
		assert.False(t, outcome.DryRun)
		assert.Len(t, fixture.files.Written, 2)
		assert.Empty(t, fixture.forge.PRInputs)
		assert.Empty(t, fixture.forge.FoundHeads)
	})

	t.Run("should commit, push and open a pull request", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
		require.NotNil(t, outcome.PullRequest)
		assert.Equal(t, entities.PullRequestCreated, outcome.PullRequest.Action)

		require.Len(t, fixture.git.CommitInputs, 1)
		commit := fixture.git.CommitInputs[0]
		assert.Equal(t, "3.13", commit.Track)
		assert.Equal(t, []string{"Dockerfile", "runtime.txt"}, commit.Files)
		assert.Equal(t, "chore: bump python 3.13 to 3.13.1", commit.CommitMessage)

		require.Len(t, fixture.git.PushInputs, 1)
		assert.Equal(t, "chore/bump-python-3.13", fixture.git.PushInputs[0].Branch)
		assert.Equal(t, "origin", fixture.git.PushInputs[0].Remote)
		assert.True(t, fixture.git.PushInputs[0].ForceWithLease)

		require.Len(t, fixture.forge.PRInputs, 1)
		pr := fixture.forge.PRInputs[0]
		assert.Equal(t, "refs/heads/chore/bump-python-3.13", pr.SourceBranch)
		assert.Equal(t, "refs/heads/main", pr.TargetBranch)
		assert.Equal(t, "chore: bump python 3.13 to 3.13.1", pr.Title)
		assert.Contains(t, pr.Description, "- `Dockerfile`")
		require.Len(t, fixture.forge.PRRepos, 1)
		assert.Equal(t, "acme/service", entities.RepositorySlug(fixture.forge.PRRepos[0]))
	})

	t.Run("should derive the repository from the git remote", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.git.Remote = entities.NewRepository("derived", "repo")
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).WithToken("ghp_personal").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		require.NotNil(t, outcome.PullRequest)
		assert.Equal(t, "derived", fixture.forge.PRRepos[0].Organization)
	})

	t.Run("should skip with pr_exists when a pull request is already open", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.forge.ExistingPR = &entities.PullRequest{ID: 42, URL: "https://github.com/acme/service/pull/42"}
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipPullRequestExists, outcome.Reason)
		assert.Equal(t, 42, outcome.Details["number"])
		assert.Empty(t, fixture.forge.PRInputs)
	})

	t.Run("should convert a push failure into pr_creation_failed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.git.PushErr = errors.New("remote rejected")
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipPullRequestCreationFailed, outcome.Reason)
		assert.Equal(t, "remote rejected", outcome.Details["message"])
		assert.Equal(t, []string{"Dockerfile", "runtime.txt"}, outcome.FilesChanged)
	})

	t.Run("should not push or open a pull request when nothing was committed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.git.NothingStaged = true
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipPullRequestCreationFailed, outcome.Reason)
		assert.Contains(t, outcome.Details["message"], "nothing to commit")
		assert.Empty(t, fixture.git.PushInputs)
		assert.Empty(t, fixture.forge.FoundHeads)
		assert.Empty(t, fixture.forge.PRInputs)
	})

	t.Run("should convert a pull request API failure into pr_creation_failed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.forge.CreateErr = errors.New("422 validation failed")
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipPullRequestCreationFailed, outcome.Reason)
		assert.Equal(t, "422 validation failed", outcome.Details["message"])
	})

	t.Run("should record a changelog entry and commit it", func(t *testing.T) {
		t.Parallel()

		// given
		files := dockerAndRuntime()
		files["CHANGELOG.md"] = "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n"
		fixture := newBumpFixture(files)
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).WithChangelog(true).
			WithToken("ghp_personal").WithRepository("acme", "service").
			BuildOptions()

		// when
		_, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Contains(t, fixture.files.Written["CHANGELOG.md"], "- changed the CPython `3.13` pins to `3.13.1`")
		assert.Contains(t, fixture.git.CommitInputs[0].Files, "CHANGELOG.md")
	})
}

func TestBumpCommandSkips(t *testing.T) {
	t.Parallel()

	t.Run("should skip with no_matches_found on a tree without pins", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{"README.md": "python 3.13.0"})
		opts := entitybuilders.NewBumpOptionsBuilder().BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipNoMatchesFound, outcome.Reason)
		assert.Empty(t, outcome.FilesChanged)
	})

	t.Run("should skip with multiple_tracks_detected when pins disagree", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{
			"Dockerfile":  "FROM python:3.13.2\n",
			"runtime.txt": "python-3.12.8\n",
		})
		opts := entitybuilders.NewBumpOptionsBuilder().BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipMultipleTracksDetected, outcome.Reason)
		assert.Equal(t, []string{"3.12", "3.13"}, outcome.Details["conflicts"])
	})

	t.Run("should skip when the requested track differs from the pinned one", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().WithTrack("3.12").BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipMultipleTracksDetected, outcome.Reason)
		assert.Equal(t, "3.12", outcome.Details["requestedTrack"])
	})

	t.Run("should skip with already_latest when every pin is current", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{"runtime.txt": "python-3.13.1\n"})
		opts := entitybuilders.NewBumpOptionsBuilder().BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipAlreadyLatest, outcome.Reason)
		assert.Equal(t, "3.13.1", outcome.NewVersion)
	})

	t.Run("should never downgrade a pin newer than the target", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{"runtime.txt": "python-3.13.5\n"})
		opts := entitybuilders.NewBumpOptionsBuilder().BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipAlreadyLatest, outcome.Reason)
	})

	t.Run("should skip with runners_missing listing the missing platforms", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		snapshots := entitybuilders.NewSnapshotsBuilder().WithoutManifest().
			WithRunners("3.13.1", "linux-x64", "win32-x64").BuildSnapshots()
		opts := entitybuilders.NewBumpOptionsBuilder().WithSnapshots(snapshots).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipRunnersMissing, outcome.Reason)
		assert.Equal(t, []string{"mac"}, outcome.Details["missing"])
		assert.Equal(t, []string{"Dockerfile", "runtime.txt"}, outcome.FilesChanged)
	})

	t.Run("should treat an unreachable manifest as missing everywhere", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.manifest.Err = errors.New("timeout")
		snapshots := entitybuilders.NewSnapshotsBuilder().WithoutManifest().BuildSnapshots()
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithNoNetworkFallback(false).WithSnapshots(snapshots).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipRunnersMissing, outcome.Reason)
		assert.Equal(t, []string{"linux", "mac", "win"}, outcome.Details["missing"])
		assert.Equal(t, 1, fixture.manifest.FetchCalls)
	})

	t.Run("should block on security keywords absent from the release notes", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		snapshots := entitybuilders.NewSnapshotsBuilder().
			WithReleaseNotes("v3.13.1", "Maintenance improvements only.").BuildSnapshots()
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithSecurityKeywords("cve", " ").WithSnapshots(snapshots).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipSecurityGateBlocked, outcome.Reason)
		assert.Equal(t, true, outcome.Details["releaseNotesFound"])
		assert.Equal(t, []string{"cve"}, outcome.Details["keywords"])
	})

	t.Run("should block when release notes cannot be found offline", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().WithSecurityKeywords("cve").BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipSecurityGateBlocked, outcome.Reason)
		assert.Equal(t, false, outcome.Details["releaseNotesFound"])
		assert.Empty(t, fixture.forge.RequestedTags)
	})

	t.Run("should pass the security gate when a keyword is mentioned", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		snapshots := entitybuilders.NewSnapshotsBuilder().
			WithReleaseNotes("3.13.1", "Addresses CVE-2025-1234.").BuildSnapshots()
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithSecurityKeywords("cve").WithSnapshots(snapshots).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
	})
}

func TestBumpCommandWorkflowPermission(t *testing.T) {
	t.Parallel()

	workflow := "jobs:\n  test:\n    steps:\n      - uses: actions/setup-python@v5\n        with:\n          python-version: \"3.13.0\"\n"

	t.Run("should skip when only workflow files need a change and the token is automation-scoped", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{".github/workflows/ci.yml": workflow})
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghs_automation").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.SkipWorkflowPermissionNeeded, outcome.Reason)
		assert.Equal(t, []string{".github/workflows/ci.yml"}, outcome.FilesChanged)
		assert.Empty(t, fixture.files.Written)
	})

	t.Run("should leave workflow files out and report them", func(t *testing.T) {
		t.Parallel()

		// given
		files := dockerAndRuntime()
		files[".github/workflows/ci.yml"] = workflow
		fixture := newBumpFixture(files)
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("ghs_automation").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
		assert.Equal(t, []string{"Dockerfile", "runtime.txt"}, outcome.FilesChanged)
		assert.Equal(t, []string{".github/workflows/ci.yml"}, outcome.SkippedWorkflowFiles)
		assert.NotContains(t, fixture.files.Written, ".github/workflows/ci.yml")
		assert.Contains(t, fixture.forge.PRInputs[0].Description, "## Workflow File Notice")
	})

	t.Run("should include workflow files for personal tokens", func(t *testing.T) {
		t.Parallel()

		// given
		files := dockerAndRuntime()
		files[".github/workflows/ci.yml"] = workflow
		fixture := newBumpFixture(files)
		opts := entitybuilders.NewBumpOptionsBuilder().
			WithDryRun(false).WithAllowPRCreation(true).
			WithToken("github_pat_abc").WithRepository("acme", "service").
			BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Contains(t, outcome.FilesChanged, ".github/workflows/ci.yml")
		assert.Empty(t, outcome.SkippedWorkflowFiles)
	})

	t.Run("should not apply the permission gate under dry-run", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{".github/workflows/ci.yml": workflow})
		opts := entitybuilders.NewBumpOptionsBuilder().WithToken("ghs_automation").BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSuccess, outcome.Status)
		assert.Equal(t, []string{".github/workflows/ci.yml"}, outcome.FilesChanged)
	})
}

func TestBumpCommandErrors(t *testing.T) {
	t.Parallel()

	t.Run("should reject a malformed track", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		opts := entitybuilders.NewBumpOptionsBuilder().WithTrack("3.13.1").BuildOptions()

		// when
		_, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidTrack)
	})

	t.Run("should fail fast offline without a tag snapshot", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		snapshots := entitybuilders.NewSnapshotsBuilder().WithoutTags().BuildSnapshots()
		opts := entitybuilders.NewBumpOptionsBuilder().WithSnapshots(snapshots).BuildOptions()

		// when
		_, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.ErrorIs(t, err, entities.ErrNetworkDisabled)
		assert.Zero(t, fixture.forge.TagCalls)
	})

	t.Run("should fail when no source knows the track", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(map[string]string{"runtime.txt": "python-3.11.2\n"})
		opts := entitybuilders.NewBumpOptionsBuilder().BuildOptions()

		// when
		_, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.ErrorIs(t, err, entities.ErrResolutionExhausted)
	})

	t.Run("should fetch tags live when the network is allowed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.forge.Tags = []entities.StableTag{
			{TagName: "v3.13.2", Version: "3.13.2", Major: 3, Minor: 13, Patch: 2, CommitSHA: "c"},
		}
		fixture.manifest.Entries = []entities.ManifestEntry{{Version: "3.13.2", Files: []entities.ManifestFile{
			{Platform: "linux"}, {Platform: "darwin"}, {Platform: "win32"},
		}}}
		fixture.index.HTML = "<a>Python 3.13.1</a>"
		opts := entitybuilders.NewBumpOptionsBuilder().WithNoNetworkFallback(false).WithSnapshots(nil).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, "3.13.2", outcome.NewVersion)
		assert.Equal(t, 1, fixture.forge.TagCalls)
		assert.Equal(t, 1, fixture.index.FetchCalls)
	})

	t.Run("should fall back to the release index when no tag matches the track", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		snapshots := entitybuilders.NewSnapshotsBuilder().
			WithTags("v3.12.8").
			WithHTML(`<ul><li><a href="/downloads/release/python-3134/">Python 3.13.4</a></li>`+
				`<li><a href="/downloads/release/python-3140rc1/">Python 3.14.0rc1</a></li></ul>`).
			WithRunners("3.13.4", "linux-24.04", "darwin", "win32").
			BuildSnapshots()
		opts := entitybuilders.NewBumpOptionsBuilder().WithSnapshots(snapshots).BuildOptions()

		// when
		outcome, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.NoError(t, err)
		assert.Equal(t, "3.13.4", outcome.NewVersion)
	})

	t.Run("should abort when a file cannot be written", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newBumpFixture(dockerAndRuntime())
		fixture.files.WriteErr = errors.New("read-only file system")
		opts := entitybuilders.NewBumpOptionsBuilder().WithDryRun(false).WithAllowPRCreation(true).BuildOptions()

		// when
		_, err := fixture.command().Execute(context.Background(), opts)

		// then
		require.ErrorContains(t, err, "read-only file system")
	})
}

func TestGateOrder(t *testing.T) {
	t.Parallel()

	// when
	names := commands.GateNames()

	// then
	assert.Equal(t, []string{"pre-release", "security", "runners", "already-latest", "workflow-permission"}, names)
}
