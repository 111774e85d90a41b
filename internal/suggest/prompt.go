package suggest

import (
	"encoding/json"
	"fmt"
	"strings"
)

const promptFooter = `Respond with ONLY a JSON object, no code fences, no explanation, no text outside JSON.
The object must have exactly one key:
- "suggestions": an array of objects with keys "title", "detail", and "priority" ("low", "medium", or "high")`

// buildContextPrompt renders the analyzed feature context into a prompt
// asking for improvement suggestions as structured JSON.
func buildContextPrompt(sc Context) (string, error) {
	payload := struct {
		Target any `json:"target"`
		Others any `json:"others"`
	}{Target: sc.Target, Others: sc.Others}

	context, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling prompt context: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are an assistant that returns repository improvement suggestions as JSON.\n")
	b.WriteString("Given the 'target' repository features and a list of 'others' (similar repositories),\n")
	b.WriteString("suggest concrete improvements the target lacks compared to its peers.\n\n")
	b.WriteString(promptFooter)
	b.WriteString("\n\nContext:\n")
	b.Write(context)
	return b.String(), nil
}

// buildTargetPrompt asks the AI to analyze the repository by URL alone,
// without a pre-computed feature context.
func buildTargetPrompt(targetURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I have uploaded my project on GitHub here: %s\n", targetURL)
	b.WriteString(`Please analyze this repository and provide improvement suggestions by comparing it with other open-source projects written in the same programming language that are publicly available on GitHub.
Focus on:
- Code quality and structure
- Naming conventions and readability
- Best practices (design patterns, error handling, testing)
- Documentation and comments
- Performance optimizations
- Project organization (folders, modules, dependencies)
Highlight specific areas where my project differs from well-maintained repositories and suggest actionable improvements.

`)
	b.WriteString(promptFooter)
	return b.String()
}
