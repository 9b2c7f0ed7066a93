package versioning

import (
	"context"
	"fmt"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// SourceKind is the variant a Source was built as.
type SourceKind int

const (
	// SourceSnapshot serves a pre-supplied value and never touches the network.
	SourceSnapshot SourceKind = iota
	// SourceLive calls its fetcher on every Load.
	SourceLive
	// SourceDisabled fails every Load with entities.ErrNetworkDisabled.
	SourceDisabled
)

func (k SourceKind) String() string {
	switch k {
	case SourceSnapshot:
		return "snapshot"
	case SourceLive:
		return "live"
	default:
		return "disabled"
	}
}

// Fetcher retrieves a value from the network.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Source supplies one external value, either from a snapshot or from a live
// fetch. The variant is fixed at construction.
type Source[T any] struct {
	name  string
	kind  SourceKind
	value T
	fetch Fetcher[T]
}

// Snapshot builds a source that always returns value.
func Snapshot[T any](name string, value T) Source[T] {
	return Source[T]{name: name, kind: SourceSnapshot, value: value}
}

// Live builds a source backed by fetch.
func Live[T any](name string, fetch Fetcher[T]) Source[T] {
	return Source[T]{name: name, kind: SourceLive, fetch: fetch}
}

// Disabled builds a source that refuses to load.
func Disabled[T any](name string) Source[T] {
	return Source[T]{name: name, kind: SourceDisabled}
}

// Select picks the variant once: a supplied snapshot wins, then a live fetch
// when the network is allowed, otherwise the source is disabled.
func Select[T any](name string, snapshot *T, allowNetwork bool, fetch Fetcher[T]) Source[T] {
	switch {
	case snapshot != nil:
		return Snapshot(name, *snapshot)
	case allowNetwork && fetch != nil:
		return Live(name, fetch)
	default:
		return Disabled[T](name)
	}
}

// Name returns the label used in logs and errors.
func (s Source[T]) Name() string {
	return s.name
}

// Kind returns the variant chosen at construction.
func (s Source[T]) Kind() SourceKind {
	return s.kind
}

// Load returns the source's value.
func (s Source[T]) Load(ctx context.Context) (T, error) {
	switch s.kind {
	case SourceSnapshot:
		return s.value, nil
	case SourceLive:
		value, err := s.fetch(ctx)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("failed to fetch %s: %w", s.name, err)
		}
		return value, nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: provide a %s snapshot to run without network access", entities.ErrNetworkDisabled, s.name)
	}
}
