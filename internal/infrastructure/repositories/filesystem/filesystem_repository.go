package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

const defaultFileMode fs.FileMode = 0o644

// LocalFileRepository implements repositories.FileRepository on the local disk.
type LocalFileRepository struct{}

// NewLocalFileRepository creates a new LocalFileRepository.
func NewLocalFileRepository() repositories.FileRepository {
	return &LocalFileRepository{}
}

// Discover expands every include glob under root and drops the ignored paths.
func (it *LocalFileRepository) Discover(
	ctx context.Context,
	root string,
	includes, ignores []string,
	followSymlinks bool,
) ([]string, error) {
	if len(includes) == 0 {
		return nil, entities.ErrNoPatterns
	}

	excluded := append(entities.DefaultIgnores(), ignores...)
	for _, pattern := range append(append([]string{}, includes...), excluded...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
		}
	}

	opts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if !followSymlinks {
		opts = append(opts, doublestar.WithNoFollow())
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	for _, pattern := range includes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		matches, err := doublestar.Glob(fsys, pattern, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		for _, match := range matches {
			if isExcluded(excluded, match) {
				continue
			}
			seen[match] = struct{}{}
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Strings(files)
	logger.Debugf("[filesystem] %d file(s) discovered under %s", len(files), root)
	return files, nil
}

func (it *LocalFileRepository) ReadFile(_ context.Context, root, path string) (string, error) {
	data, err := os.ReadFile(resolve(root, path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the content of path, keeping its permission bits.
func (it *LocalFileRepository) WriteFile(_ context.Context, root, path, content string) error {
	target := resolve(root, path)

	mode := defaultFileMode
	info, err := os.Stat(target)
	switch {
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err = os.WriteFile(target, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isExcluded(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

func resolve(root, path string) string {
	return filepath.Join(root, filepath.FromSlash(path))
}
