package github

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// The .git suffix is trimmed before matching, so dots stay legal
	// inside repository names (socket.io, video.js).
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/\s]+)/([^/\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/\s]+)/([^/\s]+)`)
)

// ParseTarget extracts owner and repo from a scan target. Accepted forms:
// "owner/repo", an https clone or web URL, and an ssh remote
// ("git@github.com:owner/repo.git").
func ParseTarget(target string) (owner, repo string, err error) {
	target = strings.TrimSpace(target)
	target = strings.TrimSuffix(target, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(target); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(target); len(m) == 3 {
		return m[1], m[2], nil
	}

	parts := strings.Split(strings.Trim(target, "/"), "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return parts[0], parts[1], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from target: %s", target)
}
