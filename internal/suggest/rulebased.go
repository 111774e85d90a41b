package suggest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

// RuleBased compares the target against similar repositories and
// suggests features the peer group has adopted.
type RuleBased struct {
	rules []Rule
}

// NewRuleBased creates a rule-based suggester with the default rule set.
func NewRuleBased() *RuleBased {
	return &RuleBased{rules: DefaultRules}
}

func (r *RuleBased) Name() string { return "rules" }

// Generate computes per-feature adoption ratios across the similar
// repositories and fires every rule whose feature the target lacks while
// the peer ratio meets the rule's threshold.
func (r *RuleBased) Generate(_ context.Context, sc Context) ([]domain.Suggestion, error) {
	if sc.Target == nil {
		return nil, nil
	}

	ratios := r.adoptionRatios(sc.Others)
	slog.Debug("computed adoption ratios", "ratios", ratios, "peers", len(sc.Others))

	suggestions := make([]domain.Suggestion, 0, len(r.rules))
	for _, rule := range r.rules {
		ratio, ok := ratios[rule.Feature]
		if !ok {
			continue
		}
		if sc.Target.Has(rule.Feature) || ratio < rule.Threshold {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Title:    "Add " + strings.ToUpper(rule.Key),
			Detail:   rule.AddMsg,
			Priority: domain.PriorityForRatio(ratio),
			Source:   SourceRules,
		})
	}
	return suggestions, nil
}

// adoptionRatios returns, per feature, the fraction of repositories that
// carry it. An empty peer set yields an empty map and no suggestions.
func (r *RuleBased) adoptionRatios(repos []*domain.RepoFeatures) map[string]float64 {
	if len(repos) == 0 {
		return map[string]float64{}
	}

	ratios := make(map[string]float64, len(r.rules))
	for _, rule := range r.rules {
		samples := make([]float64, len(repos))
		for i, repo := range repos {
			if repo.Has(rule.Feature) {
				samples[i] = 1
			}
		}
		ratio, err := stats.Mean(samples)
		if err != nil {
			continue
		}
		ratios[rule.Feature] = ratio
	}
	return ratios
}
