package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const defaultAPIRoot = "https://api.github.com"

// RepoMetadata is the subset of repository metadata the scanner consumes.
type RepoMetadata struct {
	FullName    string
	Description string
	Language    string
	Stars       int
	Forks       int
	Topics      []string
	License     string
}

// Client wraps the go-github REST client behind the operations the
// scanner and apply flows need.
type Client struct {
	rest *gh.Client
}

// NewClient creates a GitHub client. The token may be empty, in which case
// requests are unauthenticated and subject to the anonymous rate limit.
// apiRoot overrides the API base URL (GitHub Enterprise, tests); pass ""
// for api.github.com.
func NewClient(token, apiRoot string) (*Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: waiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   waiter,
				Source: ts,
			},
		}
	}

	rest := gh.NewClient(httpClient)
	if apiRoot != "" && apiRoot != defaultAPIRoot {
		base, err := url.Parse(strings.TrimRight(apiRoot, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API root %q: %w", apiRoot, err)
		}
		rest.BaseURL = base
	}

	return &Client{rest: rest}, nil
}

// GetRepository fetches repository metadata.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*RepoMetadata, error) {
	r, _, err := c.rest.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, wrapError(err, "fetching repository %s/%s", owner, repo)
	}
	return &RepoMetadata{
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Topics:      r.Topics,
		License:     r.GetLicense().GetSPDXID(),
	}, nil
}

// SearchRepositories returns up to max repository full names matching the
// query, sorted by stars. max is clamped to the API page limit of 100.
func (c *Client) SearchRepositories(ctx context.Context, query string, max int) ([]string, error) {
	if max > 100 {
		max = 100
	}
	opts := &gh.SearchOptions{
		Sort:        "stars",
		ListOptions: gh.ListOptions{PerPage: max},
	}
	result, _, err := c.rest.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, wrapError(err, "searching repositories with query %q", query)
	}

	names := make([]string, 0, max)
	for _, r := range result.Repositories {
		if len(names) == max {
			break
		}
		names = append(names, r.GetFullName())
	}
	return names, nil
}

// PathExists probes whether a file or directory exists in the repository.
// A 404 from the contents API means the path is absent, not an error.
func (c *Client) PathExists(ctx context.Context, owner, repo, path string) (bool, error) {
	_, _, resp, err := c.rest.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return false, nil
		}
		return false, wrapError(err, "probing %s in %s/%s", path, owner, repo)
	}
	return true, nil
}

// CreatePullRequest opens a pull request and returns its HTML URL.
func (c *Client) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (string, error) {
	pr, _, err := c.rest.PullRequests.Create(ctx, owner, repo, &gh.NewPullRequest{
		Title: gh.String(title),
		Body:  gh.String(body),
		Head:  gh.String(head),
		Base:  gh.String(base),
	})
	if err != nil {
		return "", wrapError(err, "creating pull request on %s/%s", owner, repo)
	}
	return pr.GetHTMLURL(), nil
}
