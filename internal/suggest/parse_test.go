package suggest

import (
	"encoding/json"
	"testing"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	return body
}

func TestParseSuggestions_Valid(t *testing.T) {
	content := `{"suggestions": [
		{"title": "Add CI", "detail": "Add a workflow.", "priority": "high"},
		{"title": "Add TESTS", "detail": "Add a test suite.", "priority": "low"}
	]}`

	got, err := parseSuggestions(completionBody(t, content))
	if err != nil {
		t.Fatalf("parseSuggestions error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Title != "Add CI" || got[0].Priority != "high" {
		t.Errorf("first suggestion = %+v", got[0])
	}
	if got[0].Source != SourceAI {
		t.Errorf("Source = %q, want %q", got[0].Source, SourceAI)
	}
}

func TestParseSuggestions_CodeFences(t *testing.T) {
	content := "```json\n{\"suggestions\": [{\"title\": \"Add README\", \"detail\": \"d\", \"priority\": \"medium\"}]}\n```"

	got, err := parseSuggestions(completionBody(t, content))
	if err != nil {
		t.Fatalf("parseSuggestions error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Add README" {
		t.Errorf("got %+v", got)
	}
}

func TestParseSuggestions_InvalidPriorityDefaultsMedium(t *testing.T) {
	content := `{"suggestions": [{"title": "t", "detail": "d", "priority": "urgent"}]}`

	got, err := parseSuggestions(completionBody(t, content))
	if err != nil {
		t.Fatalf("parseSuggestions error: %v", err)
	}
	if got[0].Priority != "medium" {
		t.Errorf("Priority = %q, want medium", got[0].Priority)
	}
}

func TestParseSuggestions_Errors(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"not JSON", []byte("oops")},
		{"no choices", []byte(`{"choices": []}`)},
		{"empty content", completionBody(t, "")},
		{"content not JSON", completionBody(t, "Here are my thoughts...")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSuggestions(tt.body); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{}", "{}"},
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"  {}  ", "{}"},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
