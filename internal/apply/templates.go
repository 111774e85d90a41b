package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

const dockerfileTemplate = `FROM alpine:latest

WORKDIR /app
COPY . .

CMD ["./run.sh"]
`

const ciWorkflowTemplate = `name: CI

on:
  push:
    branches: [main]
  pull_request:

jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Build
        run: echo "add your build steps here"
      - name: Test
        run: echo "add your test steps here"
`

const testStarterTemplate = `# Tests

Put your test suites in this directory. The CI workflow runs them on
every push and pull request.
`

const readmeTemplate = `# %s

Describe what this project does, how to build it, and how to run it.
`

// templateFor maps a rule suggestion to the starter file it creates.
// Returns an empty path when no template matches; those suggestions
// land as a note under docs/.
func templateFor(s domain.Suggestion, repoName string) (path, content string) {
	title := strings.ToLower(s.Title)
	switch {
	case strings.Contains(title, "dockerfile"):
		return "Dockerfile", dockerfileTemplate
	case strings.Contains(title, "ci"):
		return filepath.Join(".github", "workflows", "ci.yml"), ciWorkflowTemplate
	case strings.Contains(title, "test"):
		return filepath.Join("tests", "README.md"), testStarterTemplate
	case strings.Contains(title, "readme"):
		return "README.md", fmt.Sprintf(readmeTemplate, repoName)
	}
	return "", ""
}

// applyTemplate writes the starter file for a rule suggestion. Existing
// files are left alone so a re-run never clobbers project content.
func applyTemplate(repoDir string, s domain.Suggestion) (bool, []string, error) {
	path, content := templateFor(s, filepath.Base(repoDir))
	if path == "" {
		path = filepath.Join("docs", slugify(s.Title)+".md")
		content = fmt.Sprintf("# %s\n\n%s\n", s.Title, s.Detail)
	}

	full := filepath.Join(repoDir, path)
	if _, err := os.Stat(full); err == nil {
		return false, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return false, nil, fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return false, nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, []string{path}, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "suggestion"
	}
	return slug
}

// buildChangePrompt asks the model to express a suggestion as a
// structured change plan the validator can check.
func buildChangePrompt(s domain.Suggestion) string {
	var b strings.Builder
	b.WriteString("You are applying an improvement to a repository.\n\n")
	fmt.Fprintf(&b, "Suggestion: %s\nDetail: %s\nPriority: %s\n\n", s.Title, s.Detail, s.Priority)
	b.WriteString(`Respond with JSON only, no prose and no code fences, shaped as:
{"changes": [{"path": "relative/file", "action": "add|modify|delete", "content": "full file content"}]}
Rules: paths must be relative to the repository root, never touch .git,
.env, secrets, or credentials, and omit "content" for delete actions.`)
	return b.String()
}
