package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
	"github.com/rios0rios0/pybump/internal/infrastructure/httpclient"
	"github.com/rios0rios0/pybump/internal/versioning"
)

const (
	forgeName       = "github"
	perPage         = 100
	cpythonOrg      = "python"
	cpythonRepo     = "cpython"
	openState       = "open"
	branchRefPrefix = "refs/heads/"
)

// GitHubForgeRepository implements repositories.ForgeRepository for GitHub.
// Tags and release notes are read from python/cpython; pull requests target
// the repository named in each call.
type GitHubForgeRepository struct {
	client *gh.Client
}

// NewGitHubForgeRepository creates a GitHub forge with the given token. An
// empty token yields an anonymous client.
func NewGitHubForgeRepository(token string) repositories.ForgeRepository {
	client := gh.NewClient(httpclient.New().StandardClient())
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return NewGitHubForgeRepositoryWithClient(client)
}

// NewGitHubForgeRepositoryWithClient wraps an existing client.
func NewGitHubForgeRepositoryWithClient(client *gh.Client) *GitHubForgeRepository {
	return &GitHubForgeRepository{client: client}
}

func (p *GitHubForgeRepository) Name() string { return forgeName }

// ListStableTags pages through the CPython tags, keeping those that parse as
// releases. Paging stops at the last page or at a page without any release tag.
func (p *GitHubForgeRepository) ListStableTags(
	ctx context.Context,
	includePrerelease bool,
) ([]entities.StableTag, error) {
	var stable []entities.StableTag
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		tags, resp, err := p.client.Repositories.ListTags(ctx, cpythonOrg, cpythonRepo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list CPython tags: %w", err)
		}

		added := 0
		for _, tag := range tags {
			parsed, prerelease, ok := versioning.ParseTag(tag.GetName(), tag.GetCommit().GetSHA())
			if !ok || (prerelease && !includePrerelease) {
				continue
			}
			stable = append(stable, parsed)
			added++
		}

		if resp.NextPage == 0 || added == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	versioning.SortTagsDescending(stable)
	logger.Debugf("[github] %d CPython release tag(s) listed", len(stable))
	return stable, nil
}

// GetReleaseNotes returns the body of the CPython release published for tag.
func (p *GitHubForgeRepository) GetReleaseNotes(ctx context.Context, tag string) (string, bool, error) {
	release, resp, err := p.client.Repositories.GetReleaseByTag(ctx, cpythonOrg, cpythonRepo, tag)
	if err != nil {
		if isNotFound(resp, err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to fetch release notes for %s: %w", tag, err)
	}
	if release.Body == nil {
		return "", false, nil
	}
	return release.GetBody(), true, nil
}

func (p *GitHubForgeRepository) FindExistingPR(
	ctx context.Context,
	repo entities.Repository,
	head string,
) (*entities.PullRequest, error) {
	prs, _, err := p.client.PullRequests.List(
		ctx, repo.Organization, repo.Name,
		&gh.PullRequestListOptions{
			Head:        repo.Organization + ":" + strings.TrimPrefix(head, branchRefPrefix),
			State:       openState,
			ListOptions: gh.ListOptions{PerPage: 1},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}
	if len(prs) == 0 {
		return nil, nil //nolint:nilnil // no open pull request is not an error
	}
	return toPullRequest(prs[0]), nil
}

// CreateOrUpdatePR refreshes the title and body of the open pull request for
// input.SourceBranch, or opens a new one.
func (p *GitHubForgeRepository) CreateOrUpdatePR(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequestResult, error) {
	owner := repo.Organization
	repoName := repo.Name
	sourceBranch := strings.TrimPrefix(input.SourceBranch, branchRefPrefix)
	targetBranch := strings.TrimPrefix(input.TargetBranch, branchRefPrefix)
	maintainerCanModify := true

	existing, err := p.FindExistingPR(ctx, repo, sourceBranch)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		pr, _, editErr := p.client.PullRequests.Edit(
			ctx, owner, repoName, existing.ID,
			&gh.PullRequest{
				Title:               &input.Title,
				Body:                &input.Description,
				MaintainerCanModify: &maintainerCanModify,
			},
		)
		if editErr != nil {
			return nil, fmt.Errorf("failed to update pull request #%d: %w", existing.ID, editErr)
		}
		return entities.NewPullRequestResult(toPullRequest(pr), entities.PullRequestUpdated), nil
	}

	pr, _, err := p.client.PullRequests.Create(
		ctx, owner, repoName,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &sourceBranch,
			Base:                &targetBranch,
			Body:                &input.Description,
			MaintainerCanModify: &maintainerCanModify,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return entities.NewPullRequestResult(toPullRequest(pr), entities.PullRequestCreated), nil
}

func toPullRequest(pr *gh.PullRequest) *entities.PullRequest {
	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}
}

func isNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var apiErr *gh.ErrorResponse
	return errors.As(err, &apiErr) && apiErr.Response != nil &&
		apiErr.Response.StatusCode == http.StatusNotFound
}
