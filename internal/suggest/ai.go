package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

const (
	defaultMaxTokens = 1000
	aiTimeout        = 60 * time.Second
)

// credentialSet is one endpoint/key/model triple plus the header scheme
// it authenticates with.
type credentialSet struct {
	endpoint string
	apiKey   string
	model    string
	bearer   bool // Authorization: Bearer instead of the api-key header
}

// AI generates suggestions by calling an external chat-completion
// endpoint. When the primary endpoint rejects authentication and a
// fallback credential set is configured, the fallback is tried with
// Bearer auth.
type AI struct {
	creds  []credentialSet
	client *http.Client
}

// NewAI creates the AI suggester. Primary credentials are required.
func NewAI(cfg AIConfig) (*AI, error) {
	if cfg.APIKey == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("AI credentials are not configured: set AI_API_KEY and AI_API_ENDPOINT")
	}

	creds := []credentialSet{{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
	}}
	if cfg.FallbackAPIKey != "" && cfg.FallbackEndpoint != "" {
		creds = append(creds, credentialSet{
			endpoint: cfg.FallbackEndpoint,
			apiKey:   cfg.FallbackAPIKey,
			model:    cfg.FallbackModel,
			bearer:   true,
		})
	}

	return &AI{
		creds:  creds,
		client: &http.Client{Timeout: aiTimeout},
	}, nil
}

func (a *AI) Name() string { return "ai" }

func (a *AI) Generate(ctx context.Context, sc Context) ([]domain.Suggestion, error) {
	var prompt string
	var err error
	if sc.TargetOnly {
		prompt = buildTargetPrompt(sc.TargetURL)
	} else {
		prompt, err = buildContextPrompt(sc)
		if err != nil {
			return nil, err
		}
	}

	body, err := a.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSuggestions(body)
}

// Complete sends a free-form prompt and returns the assistant message
// content. Used by the apply flow to request structured change plans.
func (a *AI) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := a.complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return extractContent(body)
}

// complete sends the prompt to each credential set in turn, retrying
// transient failures, until one returns a completion.
func (a *AI) complete(ctx context.Context, prompt string) ([]byte, error) {
	var lastErr error
	for i, cred := range a.creds {
		body, err := a.completeWith(ctx, cred, prompt)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if _, ok := err.(*authError); ok && i < len(a.creds)-1 {
			slog.Warn("AI endpoint rejected credentials, trying fallback", "endpoint", cred.endpoint)
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (a *AI) completeWith(ctx context.Context, cred credentialSet, prompt string) ([]byte, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       cred.model,
		Messages:    []completionMessage{{Role: "user", Content: prompt}},
		Temperature: 0,
		MaxTokens:   defaultMaxTokens,
		TopP:        1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling completion request: %w", err)
	}

	var body []byte
	err = retryWithBackoff(ctx, 3, func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", cred.endpoint, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if cred.bearer {
			req.Header.Set("Authorization", "Bearer "+cred.apiKey)
		} else {
			req.Header.Set("api-key", cred.apiKey)
		}

		resp, err := a.client.Do(req)
		if err != nil {
			return &transportError{err: err}
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return &transportError{err: err}
		}

		switch {
		case resp.StatusCode == 429:
			return &rateLimitError{}
		case resp.StatusCode == 401 || resp.StatusCode == 403:
			return &authError{message: string(respBody)}
		case resp.StatusCode >= 500:
			return &serverError{statusCode: resp.StatusCode, body: string(respBody)}
		case resp.StatusCode != 200:
			return fmt.Errorf("AI endpoint error (status %d): %s", resp.StatusCode, string(respBody))
		}

		body = respBody
		return nil
	})
	return body, err
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
	TopP        float64             `json:"top_p"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
