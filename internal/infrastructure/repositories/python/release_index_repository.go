package python

import (
	"context"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/repositories"
	"github.com/rios0rios0/pybump/internal/infrastructure/httpclient"
)

// ReleaseIndexURL lists every published CPython source release.
const ReleaseIndexURL = "https://www.python.org/downloads/source/"

// ReleaseIndexRepository fetches the python.org source release listing.
type ReleaseIndexRepository struct {
	url    string
	client *retryablehttp.Client
}

// NewReleaseIndexRepository creates a repository reading the public index.
func NewReleaseIndexRepository() repositories.ReleaseIndexRepository {
	return NewReleaseIndexRepositoryForURL(ReleaseIndexURL, httpclient.New())
}

// NewReleaseIndexRepositoryForURL creates a repository reading url.
func NewReleaseIndexRepositoryForURL(url string, client *retryablehttp.Client) *ReleaseIndexRepository {
	return &ReleaseIndexRepository{url: url, client: client}
}

func (it *ReleaseIndexRepository) FetchReleaseIndex(ctx context.Context) (string, error) {
	logger.Debugf("[python] fetching release index from %s", it.url)
	return httpclient.GetText(ctx, it.client, it.url)
}
