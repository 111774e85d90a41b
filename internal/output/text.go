package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/abhi11j/CodeCatalyst/internal/domain"
)

// TextWriter outputs a human-readable scan report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *domain.ScanReport) error {
	ew := &errWriter{w: w}

	ew.printf("Scan report for %s\n", report.Target)
	ew.println(strings.Repeat("─", 60))
	ew.printf("Suggestions: %d total\n", len(report.Suggestions))
	if report.Warning != "" {
		ew.printf("Warning: %s\n", report.Warning)
	}
	ew.println(strings.Repeat("─", 60))

	if len(report.Suggestions) == 0 {
		ew.println("\nNothing to suggest. Looks good!")
		return ew.err
	}

	grouped := groupByPriority(report.Suggestions)
	for _, priority := range []string{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow} {
		suggestions := grouped[priority]
		if len(suggestions) == 0 {
			continue
		}

		ew.printf("\n%s %s\n", priorityIcon(priority), strings.ToUpper(priority))
		ew.println(strings.Repeat("─", 40))

		// Stable ordering within a priority
		sort.Slice(suggestions, func(i, j int) bool {
			return suggestions[i].Title < suggestions[j].Title
		})

		for _, s := range suggestions {
			ew.printf("\n  %s (%s)\n", s.Title, s.Source)
			for _, line := range wrapText(s.Detail, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func groupByPriority(suggestions []domain.Suggestion) map[string][]domain.Suggestion {
	m := make(map[string][]domain.Suggestion)
	for _, s := range suggestions {
		m[s.Priority] = append(m[s.Priority], s)
	}
	return m
}

func priorityIcon(priority string) string {
	switch priority {
	case domain.PriorityHigh:
		return "[!!]"
	case domain.PriorityMedium:
		return "[!]"
	case domain.PriorityLow:
		return "[-]"
	default:
		return "[?]"
	}
}

// wrapText wraps text to the given width on word boundaries.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
