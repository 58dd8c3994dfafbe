package check

import (
	"fmt"
	"strings"
)

// AmbiguityLevel is the reasoning backend's qualitative verdict.
type AmbiguityLevel string

const (
	AmbiguityLow    AmbiguityLevel = "low"
	AmbiguityMedium AmbiguityLevel = "medium"
	AmbiguityHigh   AmbiguityLevel = "high"
)

// Score mapping for ambiguity levels. Unknown levels fall back to the
// neutral degraded score so a misbehaving backend never blocks the run.
const (
	scoreAmbiguityLow    = 90
	scoreAmbiguityMedium = 60
	scoreAmbiguityHigh   = 30

	// NeutralAmbiguityScore is returned when the reasoning backend is
	// unavailable or its output cannot be trusted.
	NeutralAmbiguityScore = 70
)

// AmbiguityFinding is one context-specific ambiguous phrasing reported
// by the reasoning backend.
type AmbiguityFinding struct {
	Location   string `json:"location"`
	Text       string `json:"text"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion"`
}

// ambiguousTerms is the always-available dictionary tier: each named
// term carries a specific remediation.
var ambiguousTerms = []struct {
	Term       string
	Suggestion string
}{
	{"fast", "Replace \"fast\" with a latency or throughput target, e.g. p95 under 200ms"},
	{"scalable", "Replace \"scalable\" with a concrete load figure, e.g. 10k concurrent sessions"},
	{"secure", "Replace \"secure\" with the specific controls required, e.g. TLS 1.3 and audit logging"},
	{"intuitive", "Replace \"intuitive\" with a task-completion criterion, e.g. no documentation needed for first checkout"},
	{"user-friendly", "Replace \"user-friendly\" with a measurable usability outcome"},
	{"robust", "Replace \"robust\" with the failure modes that must be survived"},
	{"flexible", "Replace \"flexible\" with the variation points that must be supported"},
	{"seamless", "Replace \"seamless\" with the exact handoff behavior expected"},
	{"efficient", "Replace \"efficient\" with a resource budget, e.g. under 100MB resident memory"},
	{"easy to use", "Replace \"easy to use\" with a measurable interaction budget, e.g. three clicks or fewer"},
}

// ScanAmbiguousTerms runs the dictionary tier over flattened spec text.
// It needs no external capability and always completes. The returned
// slices keep the issue/suggestion index pairing.
func ScanAmbiguousTerms(text string) (issues []string, suggestions []string) {
	lower := strings.ToLower(text)
	for _, t := range ambiguousTerms {
		if strings.Contains(lower, t.Term) {
			issues = append(issues, fmt.Sprintf("ambiguous term %q found in spec text", t.Term))
			suggestions = append(suggestions, t.Suggestion)
		}
	}
	return issues, suggestions
}

// ScoreAmbiguityLevel maps the backend's qualitative level to a score.
func ScoreAmbiguityLevel(level AmbiguityLevel) int {
	switch level {
	case AmbiguityLow:
		return scoreAmbiguityLow
	case AmbiguityMedium:
		return scoreAmbiguityMedium
	case AmbiguityHigh:
		return scoreAmbiguityHigh
	default:
		return NeutralAmbiguityScore
	}
}

// DegradedAmbiguity is the well-formed fallback when the reasoning
// backend fails: neutral score, passing, with an issue on record. The
// dictionary-tier findings are preserved.
func DegradedAmbiguity(dictIssues, dictSuggestions []string, reason string) CheckResult {
	issues := append([]string{}, dictIssues...)
	suggestions := append([]string{}, dictSuggestions...)
	issues = append(issues, "ambiguity analysis could not complete: "+reason)
	suggestions = append(suggestions, "Re-run the simulation once the reasoning backend is reachable")
	return CheckResult{
		Passed:      true,
		Score:       NeutralAmbiguityScore,
		Issues:      issues,
		Suggestions: suggestions,
	}
}
