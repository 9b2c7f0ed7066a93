//go:build unit

package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/scanner"
)

func TestDetermineSingleTrack(t *testing.T) {
	t.Parallel()

	t.Run("should return an empty alignment without occurrences", func(t *testing.T) {
		t.Parallel()

		// when
		alignment := scanner.DetermineSingleTrack(nil)

		// then
		assert.Nil(t, alignment.Track)
		assert.Empty(t, alignment.Conflicts)
	})

	t.Run("should return the shared track", func(t *testing.T) {
		t.Parallel()

		// given
		occurrences := []entities.VersionOccurrence{
			{Major: 3, Minor: 12, Patch: 1},
			{Major: 3, Minor: 12, Patch: 4},
		}

		// when
		alignment := scanner.DetermineSingleTrack(occurrences)

		// then
		require.NotNil(t, alignment.Track)
		assert.Equal(t, "3.12", alignment.Track.String())
		assert.Empty(t, alignment.Conflicts)
	})

	t.Run("should list conflicting tracks in numeric order", func(t *testing.T) {
		t.Parallel()

		// given
		occurrences := []entities.VersionOccurrence{
			{Major: 3, Minor: 10, Patch: 0},
			{Major: 3, Minor: 9, Patch: 18},
			{Major: 3, Minor: 10, Patch: 2},
		}

		// when
		alignment := scanner.DetermineSingleTrack(occurrences)

		// then
		assert.Nil(t, alignment.Track)
		assert.Equal(t, []string{"3.9", "3.10"}, alignment.Conflicts)
	})
}
