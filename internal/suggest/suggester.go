package suggest

import (
	"context"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

// Mode selects the suggestion strategy for a scan. The values match the
// "suggestion_by" field of the scan request.
type Mode int

const (
	// ModeRules compares the target against similar repositories using
	// deterministic rules.
	ModeRules Mode = 1
	// ModeAI sends the feature context to the AI endpoint.
	ModeAI Mode = 2
	// ModeAITarget asks the AI to analyze the target by URL alone,
	// without a feature context.
	ModeAITarget Mode = 3
	// ModeOffline uses the deterministic offline comparator. No network.
	ModeOffline Mode = 4
)

// Suggestion source labels.
const (
	SourceRules   = "rules"
	SourceAI      = "ai"
	SourceOffline = "offline"
)

// Context carries the analyzed repositories a suggester works from.
type Context struct {
	Target     *domain.RepoFeatures
	Others     []*domain.RepoFeatures
	TargetURL  string
	TargetOnly bool // ModeAITarget: prompt from the URL, no feature context
}

// Suggester generates improvement suggestions for a scanned repository.
type Suggester interface {
	Generate(ctx context.Context, sc Context) ([]domain.Suggestion, error)
	Name() string
}

// AIConfig holds the chat-completion endpoint settings for the AI
// suggester. The fallback triple is tried after the primary endpoint
// rejects authentication.
type AIConfig struct {
	APIKey   string
	Endpoint string
	Model    string

	FallbackAPIKey   string
	FallbackEndpoint string
	FallbackModel    string
}

// New creates a suggester for the given mode. Unknown modes fall back to
// the rule-based suggester.
func New(mode Mode, ai AIConfig) (Suggester, error) {
	switch mode {
	case ModeAI, ModeAITarget:
		return NewAI(ai)
	case ModeOffline:
		return NewOffline(), nil
	default:
		return NewRuleBased(), nil
	}
}
