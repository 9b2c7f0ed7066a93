package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

const tokenUser = "x-access-token"

// GoGitRepository implements repositories.GitRepository with go-git, so no
// git binary is needed on the runner.
type GoGitRepository struct{}

// NewGoGitRepository creates a new GoGitRepository.
func NewGoGitRepository() repositories.GitRepository {
	return &GoGitRepository{}
}

// CreateBranchAndCommit checks out the track branch, keeping the working tree
// changes, then stages and commits the given files.
func (it *GoGitRepository) CreateBranchAndCommit(
	_ context.Context,
	input entities.BranchCommitInput,
) (*entities.BranchCommitResult, error) {
	repo, err := open(input.RepoPath)
	if err != nil {
		return nil, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	branch := input.BranchPrefix + input.Track
	ref := plumbing.NewBranchReferenceName(branch)
	_, refErr := repo.Reference(ref, false)
	if err = worktree.Checkout(&gogit.CheckoutOptions{
		Branch: ref,
		Create: refErr != nil,
		Keep:   true,
	}); err != nil {
		return nil, fmt.Errorf("failed to check out %s: %w", branch, err)
	}

	for _, file := range input.Files {
		path, relErr := worktreePath(worktree, input.RepoPath, file)
		if relErr != nil {
			return nil, relErr
		}
		if _, err = worktree.Add(path); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", file, err)
		}
	}

	staged, err := stagedFiles(worktree)
	if err != nil {
		return nil, err
	}
	if len(staged) == 0 {
		logger.Infof("[git] nothing staged on %s", branch)
		return &entities.BranchCommitResult{Branch: branch, CommitCreated: false, FilesCommitted: []string{}}, nil
	}

	opts := &gogit.CommitOptions{}
	if input.AuthorName != "" || input.AuthorEmail != "" {
		opts.Author = &object.Signature{Name: input.AuthorName, Email: input.AuthorEmail, When: time.Now()}
	}
	hash, err := worktree.Commit(input.CommitMessage, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	logger.Infof("[git] committed %d file(s) on %s (%s)", len(staged), branch, hash.String()[:7])

	return &entities.BranchCommitResult{Branch: branch, CommitCreated: true, FilesCommitted: staged}, nil
}

// PushBranch pushes the branch, authenticating HTTPS remotes with the token.
// The lease is pinned to the last known remote-tracking ref; a branch that was
// never pushed has none, so it is pushed as a plain fast-forward.
func (it *GoGitRepository) PushBranch(ctx context.Context, input entities.PushInput) error {
	repo, err := open(input.RepoPath)
	if err != nil {
		return err
	}

	remote, err := repo.Remote(input.Remote)
	if err != nil {
		return fmt.Errorf("unknown remote %q: %w", input.Remote, err)
	}

	ref := plumbing.NewBranchReferenceName(input.Branch)
	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))
	opts := &gogit.PushOptions{
		RemoteName: input.Remote,
		RefSpecs:   []config.RefSpec{refSpec},
	}
	if input.ForceWithLease {
		tracking, trackingErr := repo.Reference(plumbing.NewRemoteReferenceName(input.Remote, input.Branch), true)
		if trackingErr == nil {
			opts.ForceWithLease = &gogit.ForceWithLease{RefName: ref, Hash: tracking.Hash()}
		} else {
			logger.Debugf("[git] %s has no tracking ref on %s, pushing without a lease", input.Branch, input.Remote)
		}
	}
	if input.Token != "" && isHTTPRemote(remote.Config().URLs) {
		opts.Auth = &http.BasicAuth{Username: tokenUser, Password: input.Token}
	}

	err = repo.PushContext(ctx, opts)
	if errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		logger.Infof("[git] %s already up to date on %s", input.Branch, input.Remote)
	} else if err != nil {
		return fmt.Errorf("failed to push %s: %w", input.Branch, err)
	}

	if input.SetUpstream {
		return setUpstream(repo, input.Branch, input.Remote)
	}
	return nil
}

// CurrentBranch returns the checked-out branch, or "HEAD" when detached.
func (it *GoGitRepository) CurrentBranch(_ context.Context, repoPath string) (string, error) {
	repo, err := open(repoPath)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

// RemoteRepository derives owner/repo from the first URL of the remote.
func (it *GoGitRepository) RemoteRepository(
	_ context.Context,
	repoPath, remoteName string,
) (*entities.Repository, error) {
	repo, err := open(repoPath)
	if err != nil {
		return nil, err
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return nil, fmt.Errorf("unknown remote %q: %w", remoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, fmt.Errorf("remote %q has no URL", remoteName)
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner and repository from an HTTPS or SSH remote:
//
//	HTTPS: https://{host}/{owner}/{repo}[.git]
//	SSH:   git@{host}:{owner}/{repo}[.git]
//	SSH:   ssh://git@{host}/{owner}/{repo}[.git]
func ParseRemoteURL(rawURL string) (*entities.Repository, error) {
	endpoint, err := transport.NewEndpoint(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid remote URL %q: %w", rawURL, err)
	}

	segments := strings.Split(strings.Trim(endpoint.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] == "" { //nolint:mnd // need owner + repo
		return nil, fmt.Errorf("cannot extract owner/repo from URL: %s", rawURL)
	}

	repo := entities.NewRepository(segments[len(segments)-2], segments[len(segments)-1])
	repo.RemoteURL = rawURL
	return repo, nil
}

func open(repoPath string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", repoPath, err)
	}
	return repo, nil
}

// worktreePath maps a workspace-relative file to the path go-git stages, which
// is relative to the worktree root. The workspace may be a subdirectory.
func worktreePath(worktree *gogit.Worktree, workspace, file string) (string, error) {
	absWorkspace, err := filepath.Abs(workspace)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", workspace, err)
	}
	rel, err := filepath.Rel(worktree.Filesystem.Root(), filepath.Join(absWorkspace, file))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the worktree %s", file, worktree.Filesystem.Root())
	}
	return filepath.ToSlash(rel), nil
}

func stagedFiles(worktree *gogit.Worktree) ([]string, error) {
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	staged := make([]string, 0, len(status))
	for path, fileStatus := range status {
		if fileStatus.Staging != gogit.Unmodified && fileStatus.Staging != gogit.Untracked {
			staged = append(staged, path)
		}
	}
	sort.Strings(staged)
	return staged, nil
}

func setUpstream(repo *gogit.Repository, branch, remote string) error {
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read git config: %w", err)
	}
	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	if err = repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to set upstream for %s: %w", branch, err)
	}
	return nil
}

func isHTTPRemote(urls []string) bool {
	return len(urls) > 0 && (strings.HasPrefix(urls[0], "https://") || strings.HasPrefix(urls[0], "http://"))
}
