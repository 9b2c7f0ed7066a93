//go:build unit

package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	ghRepo "github.com/rios0rios0/pybump/internal/infrastructure/repositories/github"
)

func newForge(t *testing.T, mux *http.ServeMux) *ghRepo.GitHubForgeRepository {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := gh.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return ghRepo.NewGitHubForgeRepositoryWithClient(client)
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestListStableTags(t *testing.T) {
	t.Parallel()

	t.Run("should follow pagination and sort releases descending", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/python/cpython/tags", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				writeJSON(t, w, []map[string]any{
					{"name": "v3.12.8", "commit": map[string]any{"sha": "c3"}},
				})
				return
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s?page=2>; rel="next"`, "http://"+r.Host+r.URL.Path))
			writeJSON(t, w, []map[string]any{
				{"name": "v3.13.0", "commit": map[string]any{"sha": "c1"}},
				{"name": "v3.14.0rc1", "commit": map[string]any{"sha": "c0"}},
				{"name": "v3.13.1", "commit": map[string]any{"sha": "c2"}},
				{"name": "legacy-tag", "commit": map[string]any{"sha": "c4"}},
			})
		})
		forge := newForge(t, mux)

		// when
		tags, err := forge.ListStableTags(context.Background(), false)

		// then
		require.NoError(t, err)
		versions := make([]string, 0, len(tags))
		for _, tag := range tags {
			versions = append(versions, tag.Version)
		}
		assert.Equal(t, []string{"3.13.1", "3.13.0", "3.12.8"}, versions)
		assert.Equal(t, "c2", tags[0].CommitSHA)
	})

	t.Run("should keep release candidates when asked to", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/python/cpython/tags", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, []map[string]any{
				{"name": "v3.14.0rc1", "commit": map[string]any{"sha": "c0"}},
			})
		})
		forge := newForge(t, mux)

		// when
		tags, err := forge.ListStableTags(context.Background(), true)

		// then
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "3.14.0-rc.1", tags[0].Version)
	})

	t.Run("should surface API failures", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/python/cpython/tags", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		forge := newForge(t, mux)

		// when
		_, err := forge.ListStableTags(context.Background(), false)

		// then
		require.ErrorContains(t, err, "failed to list CPython tags")
	})
}

func TestGetReleaseNotes(t *testing.T) {
	t.Parallel()

	t.Run("should return the release body", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/python/cpython/releases/tags/v3.13.1", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{"body": "Fixes CVE-2025-0001"})
		})
		forge := newForge(t, mux)

		// when
		notes, found, err := forge.GetReleaseNotes(context.Background(), "v3.13.1")

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Fixes CVE-2025-0001", notes)
	})

	t.Run("should report a missing release as not found", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/python/cpython/releases/tags/v3.13.1", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		forge := newForge(t, mux)

		// when
		_, found, err := forge.GetReleaseNotes(context.Background(), "v3.13.1")

		// then
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestPullRequests(t *testing.T) {
	t.Parallel()

	repo := *entities.NewRepository("acme", "service")

	t.Run("should find the open pull request for a head branch", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/service/pulls", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "acme:chore/bump-python-3.13", r.URL.Query().Get("head"))
			assert.Equal(t, "open", r.URL.Query().Get("state"))
			writeJSON(t, w, []map[string]any{{
				"number": 7, "state": "open", "html_url": "https://github.com/acme/service/pull/7",
			}})
		})
		forge := newForge(t, mux)

		// when
		pr, err := forge.FindExistingPR(context.Background(), repo, "chore/bump-python-3.13")

		// then
		require.NoError(t, err)
		require.NotNil(t, pr)
		assert.Equal(t, 7, pr.ID)
		assert.Equal(t, "open", pr.Status)
	})

	t.Run("should open a pull request when none exists", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/service/pulls", func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				writeJSON(t, w, []map[string]any{})
				return
			}
			body, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.Contains(t, string(body), `"head":"chore/bump-python-3.13"`)
			assert.Contains(t, string(body), `"base":"main"`)
			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, map[string]any{"number": 8, "html_url": "https://github.com/acme/service/pull/8"})
		})
		forge := newForge(t, mux)

		// when
		pr, err := forge.CreateOrUpdatePR(context.Background(), repo, entities.PullRequestInput{
			SourceBranch: "refs/heads/chore/bump-python-3.13",
			TargetBranch: "refs/heads/main",
			Title:        "t",
			Description:  "b",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PullRequestCreated, pr.Action)
		assert.Equal(t, 8, pr.Number)
	})

	t.Run("should refresh an open pull request", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/service/pulls", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, []map[string]any{{"number": 7}})
		})
		mux.HandleFunc("/repos/acme/service/pulls/7", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			writeJSON(t, w, map[string]any{"number": 7, "html_url": "https://github.com/acme/service/pull/7"})
		})
		forge := newForge(t, mux)

		// when
		pr, err := forge.CreateOrUpdatePR(context.Background(), repo, entities.PullRequestInput{
			SourceBranch: "refs/heads/chore/bump-python-3.13",
			TargetBranch: "refs/heads/main",
			Title:        "t",
			Description:  "b",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PullRequestUpdated, pr.Action)
	})
}
