package scan

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
	"github.com/abhi11j/CodeCatalyst/internal/github"
)

// Gateway is the slice of the GitHub client the scanner depends on.
type Gateway interface {
	GetRepository(ctx context.Context, owner, repo string) (*github.RepoMetadata, error)
	SearchRepositories(ctx context.Context, query string, max int) ([]string, error)
	PathExists(ctx context.Context, owner, repo, path string) (bool, error)
}

// Analyzer derives a RepoFeatures record from repository metadata and
// content-presence probes.
type Analyzer struct {
	gw Gateway
}

// NewAnalyzer creates an analyzer backed by the given gateway.
func NewAnalyzer(gw Gateway) *Analyzer {
	return &Analyzer{gw: gw}
}

// Analyze fetches metadata for owner/repo and runs the four feature
// probes concurrently. Probes short-circuit across their candidate
// paths; a CI config under .github/workflows makes the .travis.yml
// probe unnecessary.
func (a *Analyzer) Analyze(ctx context.Context, owner, repo string) (*domain.RepoFeatures, error) {
	meta, err := a.gw.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	features := &domain.RepoFeatures{
		Name:        meta.FullName,
		Description: meta.Description,
		Language:    meta.Language,
		Stars:       meta.Stars,
		Forks:       meta.Forks,
		Topics:      meta.Topics,
		License:     meta.License,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ok, err := a.probeAny(ctx, owner, repo, "Dockerfile")
		features.HasDockerfile = ok
		return err
	})
	g.Go(func() error {
		ok, err := a.probeAny(ctx, owner, repo, ".github/workflows", ".travis.yml")
		features.HasCI = ok
		return err
	})
	g.Go(func() error {
		ok, err := a.probeAny(ctx, owner, repo, "tests", "test")
		features.HasTests = ok
		return err
	})
	g.Go(func() error {
		ok, err := a.probeAny(ctx, owner, repo, "README.md")
		features.HasReadme = ok
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return features, nil
}

// probeAny reports whether any of the candidate paths exists.
func (a *Analyzer) probeAny(ctx context.Context, owner, repo string, paths ...string) (bool, error) {
	for _, path := range paths {
		ok, err := a.gw.PathExists(ctx, owner, repo, path)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
