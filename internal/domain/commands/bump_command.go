package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pybump/internal/infrastructure/repositories"
	"github.com/rios0rios0/pybump/internal/scanner"
	"github.com/rios0rios0/pybump/internal/upgrader"
	"github.com/rios0rios0/pybump/internal/versioning"
)

const (
	forgeGitHub         = "github"
	defaultRemote       = "origin"
	defaultBaseBranch   = "main"
	changelogFile       = "CHANGELOG.md"
	branchRefPrefix     = "refs/heads/"
	maxConcurrentWrites = 8
)

// Bump is the interface for the bump command.
type Bump interface {
	Execute(ctx context.Context, opts entities.BumpOptions) (*entities.Outcome, error)
}

// capabilities records which write-phase collaborators a run can use.
// A nil field means the capability is absent.
type capabilities struct {
	git          repositories.GitRepository
	pullRequests repositories.PullRequestRepository
	repository   *entities.Repository
}

func (c capabilities) complete() bool {
	return c.git != nil && c.pullRequests != nil && c.repository != nil
}

// BumpCommand sequences scan, track alignment, version resolution, the
// eligibility gates, patching, and the git/PR side effects into one outcome.
type BumpCommand struct {
	files    repositories.FileRepository
	forges   *infraRepos.ForgeRegistry
	index    repositories.ReleaseIndexRepository
	manifest repositories.RunnerManifestRepository
	git      repositories.GitRepository
}

// NewBumpCommand creates a BumpCommand. git may be nil, which disables the
// commit/push/PR phase.
func NewBumpCommand(
	files repositories.FileRepository,
	forges *infraRepos.ForgeRegistry,
	index repositories.ReleaseIndexRepository,
	manifest repositories.RunnerManifestRepository,
	git repositories.GitRepository,
) *BumpCommand {
	return &BumpCommand{
		files:    files,
		forges:   forges,
		index:    index,
		manifest: manifest,
		git:      git,
	}
}

// Execute runs the pipeline once. Skips are returned as outcomes; the error
// is reserved for configuration problems, resolution exhaustion and failed
// file writes.
func (it *BumpCommand) Execute(ctx context.Context, opts entities.BumpOptions) (*entities.Outcome, error) {
	var requested *entities.Track
	if opts.Track != "" {
		track, err := entities.ParseTrack(opts.Track)
		if err != nil {
			return nil, err
		}
		requested = &track
	}

	includes := opts.Paths
	if len(includes) == 0 {
		includes = entities.DefaultPaths()
	}

	forge, err := it.forges.Get(forgeGitHub, opts.Token)
	if err != nil {
		return nil, err
	}

	result, err := scanner.New(it.files).Scan(ctx, scanner.Request{
		Root:           opts.Workspace,
		Includes:       includes,
		Ignores:        opts.Ignore,
		FollowSymlinks: opts.FollowSymlinks,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Occurrences) == 0 {
		return entities.NewSkip(entities.SkipNoMatchesFound, "", nil, nil), nil
	}

	alignment := scanner.DetermineSingleTrack(result.Occurrences)
	if len(alignment.Conflicts) > 0 {
		return entities.NewSkip(entities.SkipMultipleTracksDetected, "", nil, map[string]any{
			"conflicts": alignment.Conflicts,
		}), nil
	}
	track := *alignment.Track
	if requested != nil && *requested != track {
		conflicts := []entities.Track{track, *requested}
		sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Less(conflicts[j]) })
		return entities.NewSkip(entities.SkipMultipleTracksDetected, "", nil, map[string]any{
			"conflicts":      []string{conflicts[0].String(), conflicts[1].String()},
			"requestedTrack": requested.String(),
		}), nil
	}
	logger.Infof("[bump] %d occurrence(s) on track %s", len(result.Occurrences), track)

	snapshots := opts.Snapshots
	if snapshots == nil {
		snapshots = &entities.Snapshots{}
	}
	allowNetwork := !opts.NoNetworkFallback

	resolver := versioning.NewResolver(
		versioning.Select("cpython tags", optional(snapshots.CPythonTags), allowNetwork,
			func(ctx context.Context) ([]entities.StableTag, error) {
				return forge.ListStableTags(ctx, opts.IncludePrerelease)
			}),
		versioning.Select("python.org release index", snapshots.PythonOrgHTML, allowNetwork,
			it.index.FetchReleaseIndex),
	)
	resolved, err := resolver.Resolve(ctx, track, opts.IncludePrerelease)
	if err != nil {
		return nil, err
	}

	var liveNotes repositories.ReleaseNotesRepository
	if allowNetwork {
		liveNotes = forge
	}
	manifest := versioning.Select("runner manifest", optional(snapshots.RunnerManifest), allowNetwork,
		it.manifest.FetchManifest)
	state := &bumpState{
		opts:       opts,
		track:      track,
		resolved:   *resolved,
		scan:       result,
		writePhase: !opts.DryRun && opts.AllowPRCreation,
		notes:      versioning.NewNotesLookup(snapshots.ReleaseNotes, liveNotes),
		keywords:   versioning.NormalizeKeywords(opts.SecurityKeywords),
		manifest:   manifest,
		updates:    result.Occurrences,
	}

	verdict, err := runGates(ctx, orderedGates(), state)
	if err != nil {
		return nil, err
	}
	if !verdict.Allowed {
		return entities.NewSkip(verdict.Reason, resolved.Version, skipFiles(verdict.Reason, state), verdict.Details), nil
	}

	patches := upgrader.PatchAll(result.Contents, state.updates, resolved.Version)
	if upgrader.EvaluateIdempotence(patches).AlreadyLatest {
		return entities.NewSkip(entities.SkipAlreadyLatest, resolved.Version, nil, nil), nil
	}
	filesChanged := changedFiles(patches)

	if !state.writePhase {
		report := upgrader.Summarize(patches, opts.ShowDiff)
		logger.Info(report.Summary)
		for _, file := range report.ChangedFiles {
			if diff, ok := report.Diffs[file]; ok {
				logger.Infof("[bump] diff for %s:\n%s", file, diff)
			}
		}
		return entities.NewSuccess(resolved.Version, filesChanged, true), nil
	}

	if err = it.writePatches(ctx, opts.Workspace, patches); err != nil {
		return nil, err
	}
	logger.Infof("[bump] updated %d file(s) to %s", len(filesChanged), resolved.Version)

	caps := it.capabilities(ctx, forge, opts)
	if opts.Token == "" || !caps.complete() {
		logger.Info("[bump] no token, repository or git access; leaving the changes uncommitted")
		outcome := entities.NewSuccess(resolved.Version, filesChanged, false)
		outcome.SkippedWorkflowFiles = state.skippedWorkflowFiles
		return outcome, nil
	}

	return it.publish(ctx, caps, state, filesChanged), nil
}

// capabilities resolves the write-phase collaborators for this run.
func (it *BumpCommand) capabilities(
	ctx context.Context, forge repositories.ForgeRepository, opts entities.BumpOptions,
) capabilities {
	caps := capabilities{git: it.git, repository: opts.Repository}
	if opts.Token != "" {
		caps.pullRequests = forge
	}
	if caps.repository == nil && caps.git != nil {
		remote := opts.Remote
		if remote == "" {
			remote = defaultRemote
		}
		repository, err := caps.git.RemoteRepository(ctx, opts.Workspace, remote)
		if err != nil {
			logger.Warnf("[bump] cannot derive the repository from remote %q: %v", remote, err)
		} else {
			caps.repository = repository
		}
	}
	return caps
}

// publish commits, pushes and opens the pull request. Failures here are
// reported as pr_creation_failed skips rather than errors.
func (it *BumpCommand) publish(
	ctx context.Context, caps capabilities, state *bumpState, filesChanged []string,
) *entities.Outcome {
	opts := state.opts
	version := state.resolved.Version
	track := state.track.String()
	title := generateTitle(track, version)

	failed := func(step string, err error) *entities.Outcome {
		logger.Warnf("[bump] %s failed: %v", step, err)
		return entities.NewSkip(entities.SkipPullRequestCreationFailed, version, filesChanged, map[string]any{
			"message": err.Error(),
		})
	}

	base := opts.DefaultBranch
	if base == "" {
		current, err := caps.git.CurrentBranch(ctx, opts.Workspace)
		if err != nil || current == "" || current == "HEAD" {
			current = defaultBaseBranch
		}
		base = current
	}

	commitFiles := append([]string{}, filesChanged...)
	if opts.Changelog {
		if it.recordChangelog(ctx, opts.Workspace, changelogEntry(track, version)) {
			commitFiles = append(commitFiles, changelogFile)
		}
	}

	committed, err := caps.git.CreateBranchAndCommit(ctx, entities.BranchCommitInput{
		RepoPath:      opts.Workspace,
		Track:         track,
		Files:         commitFiles,
		CommitMessage: title,
		BranchPrefix:  entities.DefaultBranchPrefix,
		AuthorName:    opts.AuthorName,
		AuthorEmail:   opts.AuthorEmail,
	})
	if err != nil {
		return failed("commit", err)
	}
	if committed.Branch == "" {
		committed.Branch = branchName(track)
	}
	if !committed.CommitCreated {
		return failed("commit", fmt.Errorf("nothing to commit on %s", committed.Branch))
	}

	remote := opts.Remote
	if remote == "" {
		remote = defaultRemote
	}
	if err = caps.git.PushBranch(ctx, entities.PushInput{
		RepoPath:       opts.Workspace,
		Branch:         committed.Branch,
		Remote:         remote,
		Token:          opts.Token,
		ForceWithLease: true,
		SetUpstream:    true,
	}); err != nil {
		return failed("push", err)
	}

	existing, err := caps.pullRequests.FindExistingPR(ctx, *caps.repository, committed.Branch)
	if err != nil {
		return failed("pull request lookup", err)
	}
	if existing != nil {
		logger.Infof("[bump] pull request #%d already open: %s", existing.ID, existing.URL)
		return entities.NewSkip(entities.SkipPullRequestExists, version, filesChanged, map[string]any{
			"number": existing.ID,
			"url":    existing.URL,
		})
	}

	pullRequest, err := caps.pullRequests.CreateOrUpdatePR(ctx, *caps.repository, entities.PullRequestInput{
		SourceBranch: branchRefPrefix + committed.Branch,
		TargetBranch: branchRefPrefix + base,
		Title:        title,
		Description: generatePRBody(prContent{
			Track:                track,
			NewVersion:           version,
			FilesChanged:         filesChanged,
			BranchName:           committed.Branch,
			DefaultBranch:        base,
			SkippedWorkflowFiles: state.skippedWorkflowFiles,
		}),
	})
	if err != nil {
		return failed("pull request", err)
	}
	logger.Infof("[bump] pull request #%d %s: %s", pullRequest.Number, pullRequest.Action, pullRequest.URL)

	outcome := entities.NewSuccess(version, filesChanged, false)
	outcome.PullRequest = pullRequest
	outcome.SkippedWorkflowFiles = state.skippedWorkflowFiles
	return outcome
}

// writePatches writes every changed file. Files are independent, so the
// writes run concurrently.
func (it *BumpCommand) writePatches(ctx context.Context, root string, patches []entities.PatchResult) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentWrites)
	for _, patch := range patches {
		if !patch.Changed {
			continue
		}
		group.Go(func() error {
			if err := it.files.WriteFile(groupCtx, root, patch.File, patch.UpdatedContent); err != nil {
				return fmt.Errorf("failed to write %s: %w", patch.File, err)
			}
			logger.Debugf("[patch] %s: %s -> %s", patch.File, patch.FromVersion, patch.ToVersion)
			return nil
		})
	}
	return group.Wait()
}

// recordChangelog adds entry to CHANGELOG.md when the file exists and has an
// Unreleased section. It reports whether the file was changed.
func (it *BumpCommand) recordChangelog(ctx context.Context, root, entry string) bool {
	content, err := it.files.ReadFile(ctx, root, changelogFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("[bump] cannot read %s: %v", changelogFile, err)
		}
		return false
	}

	updated, changed := entities.AddUnreleasedChange(content, entry)
	if !changed {
		return false
	}
	if err = it.files.WriteFile(ctx, root, changelogFile, updated); err != nil {
		logger.Warnf("[bump] cannot update %s: %v", changelogFile, err)
		return false
	}
	return true
}

// skipFiles returns the files reported alongside a gate skip.
func skipFiles(reason entities.SkipReason, state *bumpState) []string {
	switch reason {
	case entities.SkipRunnersMissing:
		return entities.UniqueFiles(state.scan.Occurrences)
	case entities.SkipWorkflowPermissionNeeded:
		return state.skippedWorkflowFiles
	default:
		return nil
	}
}

func changedFiles(patches []entities.PatchResult) []string {
	files := make([]string, 0, len(patches))
	for _, patch := range patches {
		if patch.Changed {
			files = append(files, patch.File)
		}
	}
	sort.Strings(files)
	return files
}

// optional turns a nil slice into an absent snapshot.
func optional[T any](values []T) *[]T {
	if values == nil {
		return nil
	}
	return &values
}
