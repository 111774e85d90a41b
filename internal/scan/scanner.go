package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
	"github.com/abhi11j/CodeCatalyst/internal/github"
	"github.com/abhi11j/CodeCatalyst/internal/suggest"
)

// ErrInvalidRequest marks request validation failures so the HTTP layer
// can respond with a 400.
var ErrInvalidRequest = errors.New("invalid scan request")

// DefaultMaxResults is the number of similar repositories analyzed when
// the request does not specify one.
const DefaultMaxResults = 6

// Request describes one scan.
type Request struct {
	Target     string       // owner/repo or repository URL, required
	MaxResults int          // similar repos to analyze, 1..100, 0 means default
	Mode       suggest.Mode // suggestion strategy, 0 means rules
	AIKey      string       // per-request override for the AI API key
}

// Scanner orchestrates a scan: analyze the target, find and analyze
// similar repositories, and run the selected suggester.
type Scanner struct {
	gw       Gateway
	analyzer *Analyzer
	ai       suggest.AIConfig
	apiRoot  string
	logger   *slog.Logger
}

// NewScanner creates a scanner. apiRoot is used only to render the
// target URL handed to the AI suggester in target-only mode.
func NewScanner(gw Gateway, ai suggest.AIConfig, apiRoot string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		gw:       gw,
		analyzer: NewAnalyzer(gw),
		ai:       ai,
		apiRoot:  apiRoot,
		logger:   logger,
	}
}

// Scan runs one scan end to end. AI suggester failures degrade the
// report (suggestions omitted, warning set) instead of failing the scan.
func (s *Scanner) Scan(ctx context.Context, req Request) (*domain.ScanReport, error) {
	if req.Target == "" {
		return nil, fmt.Errorf("%w: field 'target' is required", ErrInvalidRequest)
	}
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 1 || maxResults > 100 {
		return nil, fmt.Errorf("%w: max_results must be between 1 and 100", ErrInvalidRequest)
	}
	mode := req.Mode
	if mode == 0 {
		mode = suggest.ModeRules
	}

	owner, repo, err := github.ParseTarget(req.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	target := owner + "/" + repo

	sctx := suggest.Context{
		TargetURL:  fmt.Sprintf("%s/repos/%s", s.apiRoot, target),
		TargetOnly: mode == suggest.ModeAITarget,
	}

	if mode != suggest.ModeAITarget {
		features, err := s.analyzer.Analyze(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		sctx.Target = features
		sctx.Others = s.analyzeSimilar(ctx, features, target, maxResults)
	}

	report := &domain.ScanReport{
		Success:     true,
		Target:      target,
		Suggestions: []domain.Suggestion{},
	}

	aiCfg := s.ai
	if req.AIKey != "" {
		aiCfg.APIKey = req.AIKey
	}

	suggester, err := suggest.New(mode, aiCfg)
	if err != nil {
		return s.degrade(report, mode, err)
	}

	s.logger.Info("generating suggestions", "target", target, "suggester", suggester.Name())
	suggestions, err := suggester.Generate(ctx, sctx)
	if err != nil {
		return s.degrade(report, mode, err)
	}
	if suggestions != nil {
		report.Suggestions = suggestions
	}
	return report, nil
}

// analyzeSimilar searches for repositories like the target and analyzes
// each one. Individual failures are skipped; a failed search yields an
// empty peer set.
func (s *Scanner) analyzeSimilar(ctx context.Context, target *domain.RepoFeatures, targetName string, max int) []*domain.RepoFeatures {
	query := similarityQuery(target)
	names, err := s.gw.SearchRepositories(ctx, query, max)
	if err != nil {
		s.logger.Warn("similar repository search failed", "query", query, "error", err)
		return nil
	}

	others := make([]*domain.RepoFeatures, 0, len(names))
	for _, name := range names {
		if name == targetName {
			continue
		}
		owner, repo, err := github.ParseTarget(name)
		if err != nil {
			continue
		}
		features, err := s.analyzer.Analyze(ctx, owner, repo)
		if err != nil {
			s.logger.Warn("skipping similar repository", "repo", name, "error", err)
			continue
		}
		others = append(others, features)
	}
	return others
}

// degrade returns the report without suggestions for AI failures, and
// the error itself for deterministic suggesters, which should not fail.
func (s *Scanner) degrade(report *domain.ScanReport, mode suggest.Mode, err error) (*domain.ScanReport, error) {
	if mode != suggest.ModeAI && mode != suggest.ModeAITarget {
		return nil, err
	}
	s.logger.Error("AI suggestions unavailable", "target", report.Target, "error", err)
	report.Warning = "AI suggestions unavailable: " + err.Error()
	return report, nil
}

// similarityQuery builds the search query used to find peer
// repositories: same primary language, at least half the target's stars.
func similarityQuery(target *domain.RepoFeatures) string {
	return fmt.Sprintf("language:%s stars:>%d", target.Language, target.Stars/2)
}
