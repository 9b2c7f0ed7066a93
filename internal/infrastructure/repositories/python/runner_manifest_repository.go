package python

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/domain/repositories"
	"github.com/rios0rios0/pybump/internal/infrastructure/httpclient"
)

// RunnerManifestURL is the versions manifest used by actions/setup-python.
const RunnerManifestURL = "https://raw.githubusercontent.com/actions/python-versions/main/versions-manifest.json"

// RunnerManifestRepository fetches the hosted-runner versions manifest.
type RunnerManifestRepository struct {
	url    string
	client *retryablehttp.Client
}

// NewRunnerManifestRepository creates a repository reading the public manifest.
func NewRunnerManifestRepository() repositories.RunnerManifestRepository {
	return NewRunnerManifestRepositoryForURL(RunnerManifestURL, httpclient.New())
}

// NewRunnerManifestRepositoryForURL creates a repository reading url.
func NewRunnerManifestRepositoryForURL(url string, client *retryablehttp.Client) *RunnerManifestRepository {
	return &RunnerManifestRepository{url: url, client: client}
}

func (it *RunnerManifestRepository) FetchManifest(ctx context.Context) ([]entities.ManifestEntry, error) {
	logger.Debugf("[python] fetching runner manifest from %s", it.url)
	body, err := httpclient.Get(ctx, it.client, it.url)
	if err != nil {
		return nil, err
	}

	var manifest []entities.ManifestEntry
	if err = json.Unmarshal(body, &manifest); err != nil {
		return nil, fmt.Errorf("received an invalid versions manifest: %w", err)
	}
	return manifest, nil
}
