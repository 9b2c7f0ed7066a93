package entities

import (
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
)

// Repository is re-exported from gitforge. Organization holds the owner.
type Repository = gitforgeEntities.Repository

// PullRequestInput is re-exported from gitforge.
type PullRequestInput = gitforgeEntities.PullRequestInput

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest

// NewRepository builds the repository identity for owner/name.
func NewRepository(owner, name string) *Repository {
	return &Repository{
		Name:         strings.TrimSuffix(name, ".git"),
		Organization: owner,
	}
}

// RepositorySlug renders a repository as owner/name.
func RepositorySlug(repo Repository) string {
	return repo.Organization + "/" + repo.Name
}

// PullRequestResult is the pull request a run touched, as reported in the outcome.
type PullRequestResult struct {
	Action PullRequestAction `json:"action,omitempty"`
	Number int               `json:"number"`
	URL    string            `json:"url"`
}

// NewPullRequestResult reports pr together with what the run did to it.
func NewPullRequestResult(pr *PullRequest, action PullRequestAction) *PullRequestResult {
	return &PullRequestResult{Action: action, Number: pr.ID, URL: pr.URL}
}
