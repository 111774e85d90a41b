// Package domain holds the core data types shared between the scan,
// suggestion, and HTTP layers.
package domain

// RepoFeatures is a flat record of the attributes derived for a scanned
// repository. It is populated once per request and discarded after the
// response is sent.
type RepoFeatures struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Language      string   `json:"language"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Topics        []string `json:"topics"`
	License       string   `json:"license,omitempty"`
	HasDockerfile bool     `json:"has_dockerfile"`
	HasCI         bool     `json:"has_ci"`
	HasTests      bool     `json:"has_tests"`
	HasReadme     bool     `json:"has_readme"`
}

// Has reports whether the named boolean feature is present.
// Known features: dockerfile, ci, tests, readme.
func (f *RepoFeatures) Has(feature string) bool {
	switch feature {
	case "dockerfile":
		return f.HasDockerfile
	case "ci":
		return f.HasCI
	case "tests":
		return f.HasTests
	case "readme":
		return f.HasReadme
	default:
		return false
	}
}
