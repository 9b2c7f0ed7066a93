//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pybump/internal/domain/commands"
	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// StubBumpCommand is a stub implementation of commands.Bump.
type StubBumpCommand struct {
	ExecuteCallCount int
	Outcome          *entities.Outcome
	ExecuteErr       error
	LastOpts         entities.BumpOptions
}

var _ commands.Bump = (*StubBumpCommand)(nil)

func (s *StubBumpCommand) Execute(
	_ context.Context,
	opts entities.BumpOptions,
) (*entities.Outcome, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Outcome, s.ExecuteErr
}

// StubScanCommand is a stub implementation of commands.Scan.
type StubScanCommand struct {
	ExecuteCallCount int
	Report           *commands.ScanReport
	ExecuteErr       error
	LastOpts         entities.ScanOptions
}

var _ commands.Scan = (*StubScanCommand)(nil)

func (s *StubScanCommand) Execute(
	_ context.Context,
	opts entities.ScanOptions,
) (*commands.ScanReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Report, s.ExecuteErr
}
