package entities

import "errors"

var (
	// ErrInvalidTrack is returned when a track is not in the form X.Y.
	ErrInvalidTrack = errors.New("invalid track")
	// ErrNetworkDisabled is returned when a source needs the network but
	// network access was disabled and no snapshot was supplied.
	ErrNetworkDisabled = errors.New("network access disabled and no snapshot provided")
	// ErrNoPatterns is returned when file discovery is asked to run without globs.
	ErrNoPatterns = errors.New("at least one glob pattern is required")
	// ErrResolutionExhausted is returned when no source yields a target version.
	ErrResolutionExhausted = errors.New("unable to resolve latest patch version")
)
