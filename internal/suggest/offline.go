package suggest

import (
	"context"
	"strings"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

// Offline is a deterministic suggester that needs no peer statistics:
// it suggests a feature whenever any similar repository has it and the
// target does not. Used for tests and air-gapped operation.
type Offline struct{}

// NewOffline creates the offline suggester.
func NewOffline() *Offline {
	return &Offline{}
}

func (o *Offline) Name() string { return "offline" }

func (o *Offline) Generate(_ context.Context, sc Context) ([]domain.Suggestion, error) {
	if sc.Target == nil {
		return nil, nil
	}

	var suggestions []domain.Suggestion
	for _, rule := range DefaultRules {
		if sc.Target.Has(rule.Feature) || !anyHas(sc.Others, rule.Feature) {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Title:    "Add " + strings.ToUpper(rule.Key),
			Detail:   rule.AddMsg,
			Priority: domain.PriorityForRatio(rule.Threshold),
			Source:   SourceOffline,
		})
	}
	return suggestions, nil
}

func anyHas(repos []*domain.RepoFeatures, feature string) bool {
	for _, r := range repos {
		if r.Has(feature) {
			return true
		}
	}
	return false
}
