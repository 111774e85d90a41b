package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a Client that communicates with a mock HTTP server.
func setupTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	rest := gh.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	rest.BaseURL = baseURL

	return &Client{rest: rest}, server
}

func TestClient_GetRepository(t *testing.T) {
	client, server := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world", r.URL.Path)
		fmt.Fprint(w, `{
			"full_name": "octocat/hello-world",
			"description": "My first repository",
			"language": "Go",
			"stargazers_count": 42,
			"forks_count": 7,
			"topics": ["demo", "tutorial"],
			"license": {"spdx_id": "MIT"}
		}`)
	}))
	defer server.Close()

	meta, err := client.GetRepository(context.Background(), "octocat", "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "octocat/hello-world", meta.FullName)
	assert.Equal(t, "Go", meta.Language)
	assert.Equal(t, 42, meta.Stars)
	assert.Equal(t, 7, meta.Forks)
	assert.Equal(t, []string{"demo", "tutorial"}, meta.Topics)
	assert.Equal(t, "MIT", meta.License)
}

func TestClient_GetRepository_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		expected error
	}{
		{"not found", 404, ErrNotFound},
		{"unauthorized", 401, ErrUnauthorized},
		{"forbidden maps to rate limited", 403, ErrRateLimited},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, server := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, `{"message": "nope"}`)
			}))
			defer server.Close()

			_, err := client.GetRepository(context.Background(), "octocat", "gone")
			assert.True(t, errors.Is(err, tc.expected), "got %v, want %v", err, tc.expected)
		})
	}
}

func TestClient_SearchRepositories(t *testing.T) {
	client, server := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "language:Go stars:>21", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		fmt.Fprint(w, `{"total_count": 3, "items": [
			{"full_name": "a/one"},
			{"full_name": "b/two"},
			{"full_name": "c/three"}
		]}`)
	}))
	defer server.Close()

	names, err := client.SearchRepositories(context.Background(), "language:Go stars:>21", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one", "b/two"}, names)
}

func TestClient_PathExists(t *testing.T) {
	client, server := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/contents/Dockerfile":
			fmt.Fprint(w, `{"type": "file", "name": "Dockerfile", "path": "Dockerfile"}`)
		case "/repos/o/r/contents/.github/workflows":
			fmt.Fprint(w, `[{"type": "file", "name": "ci.yml", "path": ".github/workflows/ci.yml"}]`)
		default:
			w.WriteHeader(404)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	exists, err := client.PathExists(ctx, "o", "r", "Dockerfile")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.PathExists(ctx, "o", "r", ".github/workflows")
	require.NoError(t, err)
	assert.True(t, exists, "directory listings count as present")

	exists, err = client.PathExists(ctx, "o", "r", ".travis.yml")
	require.NoError(t, err)
	assert.False(t, exists, "404 is absence, not an error")
}

func TestClient_CreatePullRequest(t *testing.T) {
	client, server := setupTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/repos/o/r/pulls", r.URL.Path)
		w.WriteHeader(201)
		fmt.Fprint(w, `{"number": 12, "html_url": "https://github.com/o/r/pull/12"}`)
	}))
	defer server.Close()

	prURL, err := client.CreatePullRequest(context.Background(), "o", "r",
		"Apply automated code improvements", "body", "auto/apply-suggestions-1", "main")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/o/r/pull/12", prURL)
}
