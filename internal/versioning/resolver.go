package versioning

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// Resolver turns a track into one target version using the tag list as the
// primary source and the release index page as the fallback.
type Resolver struct {
	tags  Source[[]entities.StableTag]
	index Source[string]
}

// NewResolver creates a Resolver over the two sources.
func NewResolver(tags Source[[]entities.StableTag], index Source[string]) *Resolver {
	return &Resolver{tags: tags, index: index}
}

// Resolve returns the newest release on track. Both sources are consulted
// concurrently; the tag list wins whenever it has a candidate. A disabled tag
// source is a configuration error and is never papered over by the fallback.
// When neither source has a candidate it fails with ErrResolutionExhausted.
func (it *Resolver) Resolve(
	ctx context.Context, track entities.Track, includePrerelease bool,
) (*entities.ResolvedVersion, error) {
	var (
		primary, fallback       *entities.ResolvedVersion
		primaryErr, fallbackErr error
		group                   errgroup.Group
	)

	group.Go(func() error {
		tags, err := it.tags.Load(ctx)
		if err != nil {
			primaryErr = err
			return nil
		}
		primary = LatestFromTags(tags, track, includePrerelease)
		return nil
	})
	group.Go(func() error {
		html, err := it.index.Load(ctx)
		if err != nil {
			fallbackErr = err
			return nil
		}
		fallback, fallbackErr = LatestFromHTMLIndex(track, html)
		return nil
	})
	_ = group.Wait()

	if primaryErr != nil {
		if errors.Is(primaryErr, entities.ErrNetworkDisabled) {
			return nil, primaryErr
		}
		logger.Warnf("[resolve] %s unavailable, trying %s: %v", it.tags.Name(), it.index.Name(), primaryErr)
	}

	if primary != nil {
		logger.Infof("[resolve] track %s resolves to %s (tag %s)", track, primary.Version, primary.SourceTag)
		return primary, nil
	}

	if fallbackErr != nil {
		return nil, fmt.Errorf("failed to resolve track %s from %s: %w", track, it.index.Name(), fallbackErr)
	}
	if fallback != nil {
		logger.Infof("[resolve] track %s resolves to %s via %s", track, fallback.Version, it.index.Name())
		return fallback, nil
	}

	return nil, fmt.Errorf("%w: no release found for track %s", entities.ErrResolutionExhausted, track)
}
