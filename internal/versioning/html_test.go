//go:build unit

package versioning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/versioning"
)

const downloadsPage = `<html><body>
<h2>Stable Releases</h2>
<ul>
  <li><a href="/downloads/release/python-3131/">Python 3.13.1 - Dec. 3, 2024</a></li>
  <li><a href="/downloads/release/python-3129/">Python 3.12.9 - Feb. 4, 2025</a></li>
  <li><a href="/downloads/release/python-3130/">Python 3.13.0 - Oct. 7, 2024</a></li>
</ul>
<h2>Pre-releases</h2>
<ul>
  <li><a href="/downloads/release/python-3140rc1/">Python 3.14.0rc1 - July 22, 2025</a></li>
  <li><a href="/downloads/release/python-3132b1/">Python 3.13.2b1</a></li>
</ul>
<a href="/">Download XZ compressed source tarball</a>
</body></html>`

func TestExtractReleaseVersions(t *testing.T) {
	t.Parallel()

	// when
	versions, err := versioning.ExtractReleaseVersions(downloadsPage)

	// then
	require.NoError(t, err)
	assert.Equal(t, []string{"3.13.1", "3.12.9", "3.13.0"}, versions)
}

func TestLatestFromHTMLIndex(t *testing.T) {
	t.Parallel()

	t.Run("should pick the newest stable release on the track", func(t *testing.T) {
		t.Parallel()

		// when
		resolved, err := versioning.LatestFromHTMLIndex(entities.Track{Major: 3, Minor: 13}, downloadsPage)

		// then
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, "3.13.1", resolved.Version)
		assert.Equal(t, "v3.13.1", resolved.SourceTag)
	})

	t.Run("should never coerce a pre-release into a stable version", func(t *testing.T) {
		t.Parallel()

		// when
		resolved, err := versioning.LatestFromHTMLIndex(entities.Track{Major: 3, Minor: 14}, downloadsPage)

		// then
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("should not confuse 3.1 with 3.13", func(t *testing.T) {
		t.Parallel()

		// when
		resolved, err := versioning.LatestFromHTMLIndex(entities.Track{Major: 3, Minor: 1}, downloadsPage)

		// then
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})
}
