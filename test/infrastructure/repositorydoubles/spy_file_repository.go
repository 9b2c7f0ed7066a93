//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

// SpyFileRepository implements repositories.FileRepository over an in-memory
// file map keyed by forward-slash relative path.
type SpyFileRepository struct {
	mutex sync.Mutex

	// --- contents ---
	Files map[string]string

	// --- Discover ---
	DiscoverErr   error
	DiscoverCalls int

	// --- ReadFile ---
	ReadErrs  map[string]error
	ReadPaths []string

	// --- WriteFile ---
	WriteErr error
	Written  map[string]string
}

var _ repositories.FileRepository = (*SpyFileRepository)(nil)

// NewSpyFileRepository creates a spy seeded with the given files.
func NewSpyFileRepository(files map[string]string) *SpyFileRepository {
	if files == nil {
		files = map[string]string{}
	}
	return &SpyFileRepository{Files: files, Written: map[string]string{}}
}

func (s *SpyFileRepository) Discover(
	_ context.Context, _ string, includes, ignores []string, _ bool,
) ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.DiscoverCalls++
	if s.DiscoverErr != nil {
		return nil, s.DiscoverErr
	}

	var paths []string
	for path := range s.Files {
		if matchesAny(includes, path) && !matchesAny(ignores, path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *SpyFileRepository) ReadFile(_ context.Context, _, path string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ReadPaths = append(s.ReadPaths, path)
	if err, ok := s.ReadErrs[path]; ok {
		return "", err
	}
	content, ok := s.Files[path]
	if !ok {
		return "", fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

func (s *SpyFileRepository) WriteFile(_ context.Context, _, path, content string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	if s.Written == nil {
		s.Written = map[string]string{}
	}
	s.Written[path] = content
	s.Files[path] = content
	return nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
