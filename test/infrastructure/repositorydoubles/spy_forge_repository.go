//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

// SpyForgeRepository implements repositories.ForgeRepository as a configurable spy.
type SpyForgeRepository struct {
	// --- identity ---
	ForgeName string

	// --- ListStableTags ---
	Tags           []entities.StableTag
	TagsErr        error
	TagCalls       int
	LastPrerelease bool

	// --- GetReleaseNotes ---
	Notes         map[string]string
	NotesErr      error
	RequestedTags []string

	// --- FindExistingPR ---
	ExistingPR *entities.PullRequest
	FindErr    error
	FoundHeads []string

	// --- CreateOrUpdatePR ---
	CreatedPR *entities.PullRequestResult
	CreateErr error
	PRInputs  []entities.PullRequestInput
	PRRepos   []entities.Repository
}

var _ repositories.ForgeRepository = (*SpyForgeRepository)(nil)

func (s *SpyForgeRepository) Name() string {
	if s.ForgeName == "" {
		return "spy"
	}
	return s.ForgeName
}

func (s *SpyForgeRepository) ListStableTags(
	_ context.Context, includePrerelease bool,
) ([]entities.StableTag, error) {
	s.TagCalls++
	s.LastPrerelease = includePrerelease
	return s.Tags, s.TagsErr
}

func (s *SpyForgeRepository) GetReleaseNotes(_ context.Context, tag string) (string, bool, error) {
	s.RequestedTags = append(s.RequestedTags, tag)
	if s.NotesErr != nil {
		return "", false, s.NotesErr
	}
	notes, ok := s.Notes[tag]
	return notes, ok, nil
}

func (s *SpyForgeRepository) FindExistingPR(
	_ context.Context, _ entities.Repository, head string,
) (*entities.PullRequest, error) {
	s.FoundHeads = append(s.FoundHeads, head)
	return s.ExistingPR, s.FindErr
}

func (s *SpyForgeRepository) CreateOrUpdatePR(
	_ context.Context, repo entities.Repository, input entities.PullRequestInput,
) (*entities.PullRequestResult, error) {
	s.PRInputs = append(s.PRInputs, input)
	s.PRRepos = append(s.PRRepos, repo)
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.CreatedPR != nil {
		return s.CreatedPR, nil
	}
	return &entities.PullRequestResult{
		Action: entities.PullRequestCreated,
		Number: 1,
		URL:    fmt.Sprintf("https://github.com/%s/pull/1", entities.RepositorySlug(repo)),
	}, nil
}
