//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
type SpyGitRepository struct {
	// --- CreateBranchAndCommit ---
	CommitErr     error
	CommitInputs  []entities.BranchCommitInput
	NothingStaged bool

	// --- PushBranch ---
	PushErr    error
	PushInputs []entities.PushInput

	// --- CurrentBranch ---
	Branch    string
	BranchErr error

	// --- RemoteRepository ---
	Remote    *entities.Repository
	RemoteErr error
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) CreateBranchAndCommit(
	_ context.Context, input entities.BranchCommitInput,
) (*entities.BranchCommitResult, error) {
	s.CommitInputs = append(s.CommitInputs, input)
	if s.CommitErr != nil {
		return nil, s.CommitErr
	}
	if s.NothingStaged {
		return &entities.BranchCommitResult{Branch: input.BranchPrefix + input.Track, FilesCommitted: []string{}}, nil
	}
	return &entities.BranchCommitResult{
		Branch:         input.BranchPrefix + input.Track,
		CommitCreated:  len(input.Files) > 0,
		FilesCommitted: input.Files,
	}, nil
}

func (s *SpyGitRepository) PushBranch(_ context.Context, input entities.PushInput) error {
	s.PushInputs = append(s.PushInputs, input)
	return s.PushErr
}

func (s *SpyGitRepository) CurrentBranch(_ context.Context, _ string) (string, error) {
	return s.Branch, s.BranchErr
}

func (s *SpyGitRepository) RemoteRepository(
	_ context.Context, _, _ string,
) (*entities.Repository, error) {
	return s.Remote, s.RemoteErr
}
