package repositories

import (
	"go.uber.org/dig"

	fsRepo "github.com/rios0rios0/pybump/internal/infrastructure/repositories/filesystem"
	gitRepo "github.com/rios0rios0/pybump/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/pybump/internal/infrastructure/repositories/github"
	pyRepo "github.com/rios0rios0/pybump/internal/infrastructure/repositories/python"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register forge registry with all forge factories
	if err := container.Provide(func() *ForgeRegistry {
		reg := NewForgeRegistry()
		reg.Register("github", ghRepo.NewGitHubForgeRepository)
		return reg
	}); err != nil {
		return err
	}

	providers := []any{
		fsRepo.NewLocalFileRepository,
		gitRepo.NewGoGitRepository,
		pyRepo.NewReleaseIndexRepository,
		pyRepo.NewRunnerManifestRepository,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}

	return nil
}
