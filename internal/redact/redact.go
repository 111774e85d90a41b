package redact

import "regexp"

const placeholder = "[REDACTED]"

// secretPatterns match the credential shapes that can leak into git
// command output and error messages: tokens embedded in remote URLs,
// provider API keys, and bearer headers.
var secretPatterns = []*regexp.Regexp{
	// Credentials embedded in https remote URLs
	regexp.MustCompile(`(?i)(https?://)[^/@\s]+@`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Fine-grained GitHub personal access tokens
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{36,}`),
	// OpenAI-style API keys
	regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// Keys and tokens in assignments
	regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password)\s*[:=]\s*["']?[A-Za-z0-9/+=_-]{8,}["']?`),
}

// Secrets replaces detected credentials in text with [REDACTED]. URL
// credentials keep their scheme so the remote stays identifiable.
func Secrets(text string) string {
	result := text
	for i, pat := range secretPatterns {
		if i == 0 {
			result = pat.ReplaceAllString(result, "${1}"+placeholder+"@")
			continue
		}
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}
