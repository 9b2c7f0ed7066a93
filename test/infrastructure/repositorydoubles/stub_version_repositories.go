//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

// StubReleaseIndexRepository returns a fixed downloads page.
type StubReleaseIndexRepository struct {
	HTML       string
	Err        error
	FetchCalls int
}

var _ repositories.ReleaseIndexRepository = (*StubReleaseIndexRepository)(nil)

func (s *StubReleaseIndexRepository) FetchReleaseIndex(_ context.Context) (string, error) {
	s.FetchCalls++
	return s.HTML, s.Err
}

// StubRunnerManifestRepository returns a fixed runner manifest.
type StubRunnerManifestRepository struct {
	Entries    []entities.ManifestEntry
	Err        error
	FetchCalls int
}

var _ repositories.RunnerManifestRepository = (*StubRunnerManifestRepository)(nil)

func (s *StubRunnerManifestRepository) FetchManifest(_ context.Context) ([]entities.ManifestEntry, error) {
	s.FetchCalls++
	return s.Entries, s.Err
}
