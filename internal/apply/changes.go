package apply

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Limits on AI-produced change plans.
const (
	maxChangeCount = 50
	maxContentSize = 200 * 1024
)

// protectedPrefixes are top-level paths an AI plan may never touch.
var protectedPrefixes = []string{".git", ".env", "secrets", "credentials"}

// Change is one file operation from a structured AI change plan.
type Change struct {
	Path    string `json:"path"`
	Action  string `json:"action"` // add, modify, delete
	Content string `json:"content,omitempty"`
}

type changePlan struct {
	Changes []Change `json:"changes"`
}

// parseChangePlan decodes an AI response into a change plan. The model
// sometimes wraps the JSON in prose; the first balanced object is used
// as a fallback.
func parseChangePlan(content string) ([]Change, error) {
	var plan changePlan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("%w: response did not contain a 'changes' object", ErrValidation)
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &plan); err != nil {
			return nil, fmt.Errorf("%w: response did not contain a 'changes' object", ErrValidation)
		}
	}
	if plan.Changes == nil {
		return nil, fmt.Errorf("%w: response did not contain a 'changes' list", ErrValidation)
	}
	if len(plan.Changes) > maxChangeCount {
		return nil, fmt.Errorf("%w: plan has %d changes, max allowed is %d", ErrValidation, len(plan.Changes), maxChangeCount)
	}
	return plan.Changes, nil
}

// validateChange rejects a change before anything is written.
func validateChange(c Change) error {
	if c.Path == "" {
		return fmt.Errorf("%w: each change must include a 'path'", ErrValidation)
	}
	switch c.Action {
	case "add", "modify":
		if len(c.Content) > maxContentSize {
			return fmt.Errorf("%w: content for %q exceeds %d bytes", ErrValidation, c.Path, maxContentSize)
		}
	case "delete":
	default:
		return fmt.Errorf("%w: invalid action %q, allowed: add, modify, delete", ErrValidation, c.Action)
	}
	if !safeRelPath(c.Path) {
		return fmt.Errorf("%w: path %q escapes the repository root", ErrValidation, c.Path)
	}
	for _, prefix := range protectedPrefixes {
		if c.Path == prefix || strings.HasPrefix(c.Path, prefix+"/") {
			return fmt.Errorf("%w: modification of protected path %q is not allowed", ErrValidation, c.Path)
		}
	}
	return nil
}

// safeRelPath reports whether p stays inside the repository root after
// normalization.
func safeRelPath(p string) bool {
	if p == "" || filepath.IsAbs(p) {
		return false
	}
	clean := filepath.Clean(p)
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// applyChanges validates the whole plan first, then applies it. Returns
// whether anything on disk changed.
func applyChanges(repoDir string, changes []Change) (bool, error) {
	for _, c := range changes {
		if err := validateChange(c); err != nil {
			return false, err
		}
	}

	changed := false
	for _, c := range changes {
		path := filepath.Join(repoDir, c.Path)
		switch c.Action {
		case "add", "modify":
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return changed, fmt.Errorf("creating directory for %s: %w", c.Path, err)
			}
			if err := os.WriteFile(path, []byte(c.Content), 0o644); err != nil {
				return changed, fmt.Errorf("writing %s: %w", c.Path, err)
			}
			changed = true
		case "delete":
			if _, err := os.Stat(path); err == nil {
				if err := os.Remove(path); err != nil {
					return changed, fmt.Errorf("deleting %s: %w", c.Path, err)
				}
				changed = true
			}
		}
	}
	return changed, nil
}
