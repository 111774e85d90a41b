package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

const suggestionContent = `{"suggestions": [{"title": "Add CI", "detail": "Add a workflow.", "priority": "high"}]}`

func writeCompletion(w http.ResponseWriter, content string) {
	json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
}

func testContext() Context {
	return Context{
		Target: &domain.RepoFeatures{Name: "o/r", Language: "Go", Stars: 10},
		Others: []*domain.RepoFeatures{{Name: "a/b", HasCI: true}},
	}
}

func TestAI_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "test-key" {
			t.Error("missing or wrong api-key header")
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		writeCompletion(w, suggestionContent)
	}))
	defer server.Close()

	ai, err := NewAI(AIConfig{APIKey: "test-key", Endpoint: server.URL, Model: "test-model"})
	if err != nil {
		t.Fatalf("NewAI error: %v", err)
	}

	got, err := ai.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Add CI" {
		t.Errorf("got %+v", got)
	}
}

func TestAI_TargetOnlyPrompt(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Messages[0].Content
		writeCompletion(w, suggestionContent)
	}))
	defer server.Close()

	ai, err := NewAI(AIConfig{APIKey: "k", Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewAI error: %v", err)
	}

	_, err = ai.Generate(context.Background(), Context{
		TargetOnly: true,
		TargetURL:  "https://api.github.com/repos/o/r",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.Contains(prompt, "https://api.github.com/repos/o/r") || !strings.Contains(prompt, "suggestions") {
		t.Errorf("target-only prompt missing expected content: %q", prompt)
	}
}

func TestAI_RateLimitRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(429)
			w.Write([]byte(`{"error": "rate limited"}`))
			return
		}
		writeCompletion(w, suggestionContent)
	}))
	defer server.Close()

	ai, err := NewAI(AIConfig{APIKey: "k", Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewAI error: %v", err)
	}

	got, err := ai.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Generate error after retries: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d suggestions, want 1", len(got))
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts (2 retries), got %d", attempts)
	}
}

func TestAI_FallbackCredentials(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fallback-key" {
			t.Error("fallback should authenticate with Bearer")
		}
		writeCompletion(w, suggestionContent)
	}))
	defer fallback.Close()

	ai, err := NewAI(AIConfig{
		APIKey:           "bad-key",
		Endpoint:         primary.URL,
		FallbackAPIKey:   "fallback-key",
		FallbackEndpoint: fallback.URL,
		FallbackModel:    "gpt-4o",
	})
	if err != nil {
		t.Fatalf("NewAI error: %v", err)
	}

	got, err := ai.Generate(context.Background(), testContext())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d suggestions, want 1", len(got))
	}
}

func TestAI_AuthErrorWithoutFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error": "bad key"}`))
	}))
	defer server.Close()

	ai, err := NewAI(AIConfig{APIKey: "bad", Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewAI error: %v", err)
	}

	if _, err := ai.Generate(context.Background(), testContext()); err == nil {
		t.Error("expected auth error")
	}
}
