package domain

// Priority levels for suggestions.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Suggestion is a single improvement note for a repository.
type Suggestion struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Priority string `json:"priority"`
	Source   string `json:"source"`
}

// PriorityForRatio maps a feature adoption ratio to a priority label.
// A feature most similar repositories carry is a high-priority gap.
func PriorityForRatio(ratio float64) string {
	switch {
	case ratio > 0.8:
		return PriorityHigh
	case ratio > 0.4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ScanReport is the response body for a completed scan.
type ScanReport struct {
	Success     bool         `json:"success"`
	Target      string       `json:"target"`
	Suggestions []Suggestion `json:"suggestions"`
	Warning     string       `json:"warning,omitempty"`
}
