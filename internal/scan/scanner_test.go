package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi11j/CodeCatalyst/internal/github"
	"github.com/abhi11j/CodeCatalyst/internal/suggest"
)

// fakeGateway serves canned metadata and path probes without the network.
type fakeGateway struct {
	repos       map[string]*github.RepoMetadata
	paths       map[string]map[string]bool // full name -> path -> exists
	probeErrs   map[string]error           // full name -> probe failure
	searchNames []string
	searchErr   error
	lastQuery   string
}

func (f *fakeGateway) GetRepository(_ context.Context, owner, repo string) (*github.RepoMetadata, error) {
	meta, ok := f.repos[owner+"/"+repo]
	if !ok {
		return nil, github.ErrNotFound
	}
	return meta, nil
}

func (f *fakeGateway) SearchRepositories(_ context.Context, query string, max int) ([]string, error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.searchNames) > max {
		return f.searchNames[:max], nil
	}
	return f.searchNames, nil
}

func (f *fakeGateway) PathExists(_ context.Context, owner, repo, path string) (bool, error) {
	if err := f.probeErrs[owner+"/"+repo]; err != nil {
		return false, err
	}
	return f.paths[owner+"/"+repo][path], nil
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		repos: map[string]*github.RepoMetadata{
			"octocat/hello-world": {FullName: "octocat/hello-world", Language: "Go", Stars: 40},
			"a/one":               {FullName: "a/one", Language: "Go", Stars: 100},
			"b/two":               {FullName: "b/two", Language: "Go", Stars: 90},
		},
		paths: map[string]map[string]bool{
			"octocat/hello-world": {"README.md": true},
			"a/one":               {"Dockerfile": true, ".github/workflows": true, "tests": true, "README.md": true},
			"b/two":               {".travis.yml": true, "test": true, "README.md": true},
		},
		searchNames: []string{"a/one", "b/two"},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	gw := newFakeGateway()
	analyzer := NewAnalyzer(gw)

	features, err := analyzer.Analyze(context.Background(), "b", "two")
	require.NoError(t, err)
	assert.Equal(t, "b/two", features.Name)
	assert.False(t, features.HasDockerfile)
	assert.True(t, features.HasCI, "travis fallback should count as CI")
	assert.True(t, features.HasTests, "singular test directory should count")
	assert.True(t, features.HasReadme)
}

func TestAnalyzer_ProbeErrorPropagates(t *testing.T) {
	gw := newFakeGateway()
	gw.probeErrs = map[string]error{"octocat/hello-world": github.ErrRateLimited}
	analyzer := NewAnalyzer(gw)

	_, err := analyzer.Analyze(context.Background(), "octocat", "hello-world")
	assert.ErrorIs(t, err, github.ErrRateLimited, "a failed probe must not read as an absent feature")
}

func TestScanner_TargetProbeErrorFailsScan(t *testing.T) {
	gw := newFakeGateway()
	gw.probeErrs = map[string]error{"octocat/hello-world": github.ErrRateLimited}
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	_, err := scanner.Scan(context.Background(), Request{Target: "octocat/hello-world"})
	assert.ErrorIs(t, err, github.ErrRateLimited)
}

func TestScanner_PeerProbeErrorSkipsPeer(t *testing.T) {
	gw := newFakeGateway()
	gw.probeErrs = map[string]error{"a/one": github.ErrRateLimited}
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{Target: "octocat/hello-world"})
	require.NoError(t, err, "a failing peer must not fail the scan")
	assert.True(t, report.Success)
}

func TestAnalyzer_UnknownRepo(t *testing.T) {
	analyzer := NewAnalyzer(newFakeGateway())

	_, err := analyzer.Analyze(context.Background(), "ghost", "repo")
	assert.ErrorIs(t, err, github.ErrNotFound)
}

func TestScanner_RulesMode(t *testing.T) {
	gw := newFakeGateway()
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{Target: "octocat/hello-world"})
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, "octocat/hello-world", report.Target)
	assert.Equal(t, "language:Go stars:>20", gw.lastQuery)

	titles := make([]string, len(report.Suggestions))
	for i, s := range report.Suggestions {
		titles[i] = s.Title
	}
	assert.Contains(t, titles, "Add DOCKERFILE")
	assert.Contains(t, titles, "Add CI")
	assert.Contains(t, titles, "Add TESTS")
	assert.NotContains(t, titles, "Add README")
}

func TestScanner_TargetExcludedFromPeers(t *testing.T) {
	gw := newFakeGateway()
	gw.searchNames = []string{"octocat/hello-world", "a/one"}
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{Target: "octocat/hello-world"})
	require.NoError(t, err)
	// With only a/one as peer, every feature it has and the target lacks fires.
	assert.NotEmpty(t, report.Suggestions)
	for _, s := range report.Suggestions {
		assert.Equal(t, suggest.SourceRules, s.Source)
	}
}

func TestScanner_SimilarFailuresSkipped(t *testing.T) {
	gw := newFakeGateway()
	gw.searchNames = []string{"a/one", "missing/repo", "b/two"}
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{Target: "octocat/hello-world"})
	require.NoError(t, err)
	assert.True(t, report.Success, "one unanalyzable peer must not fail the scan")
}

func TestScanner_SearchFailureDegradesToEmptyPeers(t *testing.T) {
	gw := newFakeGateway()
	gw.searchErr = errors.New("boom")
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{Target: "octocat/hello-world"})
	require.NoError(t, err)
	assert.Empty(t, report.Suggestions, "no peers means no rule suggestions")
}

func TestScanner_Validation(t *testing.T) {
	scanner := NewScanner(newFakeGateway(), suggest.AIConfig{}, "https://api.github.com", nil)
	ctx := context.Background()

	testCases := []struct {
		name string
		req  Request
	}{
		{"missing target", Request{}},
		{"bad max results", Request{Target: "o/r", MaxResults: 101}},
		{"negative max results", Request{Target: "o/r", MaxResults: -1}},
		{"unparseable target", Request{Target: "just-a-name"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scanner.Scan(ctx, tc.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestScanner_TargetNotFound(t *testing.T) {
	scanner := NewScanner(newFakeGateway(), suggest.AIConfig{}, "https://api.github.com", nil)

	_, err := scanner.Scan(context.Background(), Request{Target: "ghost/repo"})
	assert.ErrorIs(t, err, github.ErrNotFound)
}

func TestScanner_AIModeDegradesWithoutCredentials(t *testing.T) {
	scanner := NewScanner(newFakeGateway(), suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{
		Target: "octocat/hello-world",
		Mode:   suggest.ModeAI,
	})
	require.NoError(t, err, "AI failures degrade the report, not the request")
	assert.True(t, report.Success)
	assert.Empty(t, report.Suggestions)
	assert.NotEmpty(t, report.Warning)
}

func TestScanner_AITargetModeSkipsAnalysis(t *testing.T) {
	gw := newFakeGateway()
	scanner := NewScanner(gw, suggest.AIConfig{}, "https://api.github.com", nil)

	report, err := scanner.Scan(context.Background(), Request{
		Target: "ghost/repo", // never fetched in target-only mode
		Mode:   suggest.ModeAITarget,
	})
	require.NoError(t, err)
	assert.Equal(t, "ghost/repo", report.Target)
	assert.Empty(t, gw.lastQuery, "target-only mode must not search")
}
