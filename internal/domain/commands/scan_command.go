package commands

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
	"github.com/rios0rios0/pybump/internal/scanner"
)

// Scan is the interface for the scan command.
type Scan interface {
	Execute(ctx context.Context, opts entities.ScanOptions) (*ScanReport, error)
}

// ScanReport lists every occurrence found and the track they reduce to.
type ScanReport struct {
	FilesScanned []string
	Occurrences  []entities.VersionOccurrence
	Alignment    entities.TrackAlignment
}

// ScanCommand locates pinned versions without resolving or changing anything.
type ScanCommand struct {
	files repositories.FileRepository
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(files repositories.FileRepository) *ScanCommand {
	return &ScanCommand{files: files}
}

// Execute scans the workspace and aligns the occurrences to a track.
func (it *ScanCommand) Execute(ctx context.Context, opts entities.ScanOptions) (*ScanReport, error) {
	includes := opts.Paths
	if len(includes) == 0 {
		includes = entities.DefaultPaths()
	}

	result, err := scanner.New(it.files).Scan(ctx, scanner.Request{
		Root:           opts.Workspace,
		Includes:       includes,
		Ignores:        opts.Ignore,
		FollowSymlinks: opts.FollowSymlinks,
	})
	if err != nil {
		return nil, err
	}

	return &ScanReport{
		FilesScanned: result.FilesScanned,
		Occurrences:  result.Occurrences,
		Alignment:    scanner.DetermineSingleTrack(result.Occurrences),
	}, nil
}
