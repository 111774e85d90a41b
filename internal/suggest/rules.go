package suggest

// Rule describes one feature comparison: when the target lacks the
// feature and the adoption ratio among similar repositories meets the
// threshold, the rule fires.
type Rule struct {
	Key       string  // short name used in suggestion titles
	Feature   string  // feature name understood by domain.RepoFeatures.Has
	Threshold float64 // minimum adoption ratio among similar repos
	AddMsg    string
}

// DefaultRules is the built-in comparison rule set. Thresholds are
// deliberately uneven: tests are suggested at nearly any adoption level,
// a README only when it is near-universal.
var DefaultRules = []Rule{
	{
		Key:       "dockerfile",
		Feature:   "dockerfile",
		Threshold: -0.1,
		AddMsg:    "Add a Dockerfile to simplify deployment and ensure reproducible builds.",
	},
	{
		Key:       "ci",
		Feature:   "ci",
		Threshold: 0.5,
		AddMsg:    "Add CI workflows (GitHub Actions / other) to run tests and lint on push/PR.",
	},
	{
		Key:       "tests",
		Feature:   "tests",
		Threshold: 0.01,
		AddMsg:    "Add a test suite and configure a test runner to improve reliability.",
	},
	{
		Key:       "readme",
		Feature:   "readme",
		Threshold: 0.9,
		AddMsg:    "Add a README.md that describes the project, quickstart, and contribution guidelines.",
	},
}
