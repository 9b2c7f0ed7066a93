package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
)

// maxConcurrentReads bounds the number of files read at once.
const maxConcurrentReads = 8

// Request describes one workspace scan.
type Request struct {
	Root           string
	Includes       []string
	Ignores        []string
	FollowSymlinks bool
}

// Result carries every located occurrence plus the content that was read,
// so later phases can patch without reading the files a second time.
type Result struct {
	FilesScanned []string
	Occurrences  []entities.VersionOccurrence
	Contents     map[string]string
}

// Scanner walks a workspace and locates pinned CPython versions.
type Scanner struct {
	files repositories.FileRepository
}

// New creates a Scanner backed by the given file repository.
func New(files repositories.FileRepository) *Scanner {
	return &Scanner{files: files}
}

// Scan discovers files matching the request and returns every occurrence
// ordered by (file, line, column). Files that disappear between discovery
// and reading are skipped.
func (it *Scanner) Scan(ctx context.Context, request Request) (*Result, error) {
	if len(request.Includes) == 0 {
		return nil, entities.ErrNoPatterns
	}

	paths, err := it.files.Discover(ctx, request.Root, request.Includes, request.Ignores, request.FollowSymlinks)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	logger.Debugf("[scanner] discovered %d candidate file(s) under %q", len(paths), request.Root)

	var (
		mutex    sync.Mutex
		contents = make(map[string]string, len(paths))
		found    []entities.VersionOccurrence
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentReads)
	for _, path := range paths {
		if !IsSupportedFile(path) {
			continue
		}

		group.Go(func() error {
			content, readErr := it.files.ReadFile(groupCtx, request.Root, path)
			if readErr != nil {
				if errors.Is(readErr, fs.ErrNotExist) {
					logger.Debugf("[scanner] %s vanished before it could be read", path)
					return nil
				}
				return fmt.Errorf("failed to read %s: %w", path, readErr)
			}

			occurrences := FindVersionOccurrences(path, content)

			mutex.Lock()
			defer mutex.Unlock()
			contents[path] = content
			found = append(found, occurrences...)
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}

	entities.SortOccurrences(found)
	scanned := make([]string, 0, len(contents))
	for _, path := range paths {
		if _, ok := contents[path]; ok {
			scanned = append(scanned, path)
		}
	}

	logger.Infof("[scanner] %d occurrence(s) in %d file(s)", len(found), len(scanned))
	return &Result{FilesScanned: scanned, Occurrences: found, Contents: contents}, nil
}
