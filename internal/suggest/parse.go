package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

// completionResponse is the chat-completion envelope returned by the AI
// endpoint.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// suggestionDoc is the inner JSON document the prompt asks the model to
// produce.
type suggestionDoc struct {
	Suggestions []struct {
		Title    string `json:"title"`
		Detail   string `json:"detail"`
		Priority string `json:"priority"`
	} `json:"suggestions"`
}

// extractContent pulls the assistant message out of a chat-completion
// response body, with surrounding code fences removed.
func extractContent(body []byte) (string, error) {
	var outer completionResponse
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", fmt.Errorf("invalid completion response: %w", err)
	}
	if len(outer.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	content := stripCodeFences(outer.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty content in completion response")
	}
	return content, nil
}

// parseSuggestions extracts the suggestion list from a raw
// chat-completion response body.
func parseSuggestions(body []byte) ([]domain.Suggestion, error) {
	content, err := extractContent(body)
	if err != nil {
		return nil, err
	}

	var doc suggestionDoc
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid suggestions JSON: %w", err)
	}

	suggestions := make([]domain.Suggestion, 0, len(doc.Suggestions))
	for _, s := range doc.Suggestions {
		priority := s.Priority
		switch priority {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		default:
			priority = domain.PriorityMedium
		}
		suggestions = append(suggestions, domain.Suggestion{
			Title:    s.Title,
			Detail:   s.Detail,
			Priority: priority,
			Source:   SourceAI,
		})
	}
	return suggestions, nil
}

// stripCodeFences removes a surrounding markdown code fence, which some
// models emit despite instructions.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}
