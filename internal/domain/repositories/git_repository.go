package repositories

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// GitRepository performs the local git side effects of a bump.
type GitRepository interface {
	// CreateBranchAndCommit checks out the track branch (creating it from HEAD
	// when missing), stages the files, and commits them if anything is staged.
	CreateBranchAndCommit(ctx context.Context, input entities.BranchCommitInput) (*entities.BranchCommitResult, error)

	// PushBranch pushes the branch to the remote.
	PushBranch(ctx context.Context, input entities.PushInput) error

	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context, repoPath string) (string, error)

	// RemoteRepository derives owner/repo from the remote's URL.
	RemoteRepository(ctx context.Context, repoPath, remote string) (*entities.Repository, error)
}
