package server

import (
	"log/slog"

	"github.com/abhi11j/CodeCatalyst/internal/apply"
	"github.com/abhi11j/CodeCatalyst/internal/config"
	"github.com/abhi11j/CodeCatalyst/internal/github"
	"github.com/abhi11j/CodeCatalyst/internal/scan"
	"github.com/abhi11j/CodeCatalyst/internal/suggest"
)

// AIConfigFrom converts loaded credentials into the suggester's config.
func AIConfigFrom(creds config.AICredentials) suggest.AIConfig {
	return suggest.AIConfig{
		APIKey:           creds.APIKey,
		Endpoint:         creds.Endpoint,
		Model:            creds.Model,
		FallbackAPIKey:   creds.FallbackAPIKey,
		FallbackEndpoint: creds.FallbackEndpoint,
		FallbackModel:    creds.FallbackModel,
	}
}

// NewScannerFactory builds scanners backed by the real GitHub API. A
// request token overrides the configured one for that scan only.
func NewScannerFactory(cfg *config.Config, logger *slog.Logger) ScannerFactory {
	return func(token string) (Scanner, error) {
		if token == "" {
			token = cfg.GitHubToken
		}
		client, err := github.NewClient(token, cfg.GitHubAPIRoot)
		if err != nil {
			return nil, err
		}
		return scan.NewScanner(client, AIConfigFrom(cfg.AI), cfg.GitHubAPIRoot, logger), nil
	}
}

// NewApplierFactory builds appliers that run git locally, open pull
// requests through the GitHub API, and expand AI suggestions when
// credentials are configured.
func NewApplierFactory(cfg *config.Config, logger *slog.Logger) ApplierFactory {
	return func(token string) (Applier, error) {
		if token == "" {
			token = cfg.GitHubToken
		}
		client, err := github.NewClient(token, cfg.GitHubAPIRoot)
		if err != nil {
			return nil, err
		}
		var completer apply.Completer
		if cfg.AI.HasPrimary() {
			ai, err := suggest.NewAI(AIConfigFrom(cfg.AI))
			if err != nil {
				return nil, err
			}
			completer = ai
		}
		exec := &apply.RealExecutor{Timeout: apply.DefaultTimeout}
		return apply.NewApplier(exec, client, completer, logger), nil
	}
}
