package repositories

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// PullRequestRepository manages pull requests on the code-hosting service.
type PullRequestRepository interface {
	// FindExistingPR returns the open pull request whose head is the given
	// branch, or nil when there is none.
	FindExistingPR(ctx context.Context, repo entities.Repository, head string) (*entities.PullRequest, error)

	// CreateOrUpdatePR refreshes the open pull request for input.SourceBranch, or opens one.
	CreateOrUpdatePR(
		ctx context.Context, repo entities.Repository, input entities.PullRequestInput,
	) (*entities.PullRequestResult, error)
}

// ForgeRepository is everything pybump needs from a code-hosting service,
// bound to one auth token.
type ForgeRepository interface {
	TagRepository
	ReleaseNotesRepository
	PullRequestRepository

	// Name returns the forge identifier (e.g. "github").
	Name() string
}
