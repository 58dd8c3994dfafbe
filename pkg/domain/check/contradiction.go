package check

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/specvet/specvet/pkg/domain/spec"
)

// Contradiction pairs two statements that cannot both hold.
type Contradiction struct {
	ItemA       string        `json:"item_a"`
	ItemB       string        `json:"item_b"`
	Description string        `json:"description"`
	Resolution  string        `json:"resolution"`
	Severity    spec.Severity `json:"severity"`
}

// Scoring for the contradiction check.
const (
	contradictionCleanScore = 95
	contradictionPenalty    = 25
	contradictionPassScore  = 60

	// NeutralContradictionScore is the degraded fallback when the
	// reasoning backend fails.
	NeutralContradictionScore = 75

	// Encryption overhead makes latency budgets under this threshold
	// suspect.
	encryptionLatencyFloorMs = 50
)

// Keyword groups for the deterministic pairwise rules. Matching is
// lower-cased substring containment; no ordering or dedupe is assumed.
var (
	realTimeTerms     = []string{"real-time", "real time", "instant", "immediately"}
	throttleTerms     = []string{"throttle", "throttling", "rate limit", "rate-limit"}
	offlineTerms      = []string{"offline"}
	networkTerms      = []string{"network", "internet", "api"}
	encryptionTerms   = []string{"encrypt"}
	latencyBudgetExpr = regexp.MustCompile(`(\d+)\s*ms`)
)

// DetectConflicts compares every requirement against every constraint.
// O(requirements x constraints) is acceptable: specs hold tens of items.
func DetectConflicts(requirements, constraints []string) []Contradiction {
	var found []Contradiction

	for _, req := range requirements {
		reqLower := strings.ToLower(req)
		for _, con := range constraints {
			conLower := strings.ToLower(con)

			if containsAny(reqLower, realTimeTerms) && containsAny(conLower, throttleTerms) {
				found = append(found, Contradiction{
					ItemA:       req,
					ItemB:       con,
					Description: "requirement expects real-time behavior but a constraint throttles it",
					Resolution:  "Decide which updates must be instant and exempt them from the rate limit, or relax the latency expectation",
					Severity:    spec.SeverityWarning,
				})
			}

			if containsAny(reqLower, offlineTerms) && containsAny(conLower, networkTerms) {
				found = append(found, Contradiction{
					ItemA:       req,
					ItemB:       con,
					Description: "requirement expects offline operation but a constraint depends on network access",
					Resolution:  "Split the offline-capable subset out, or drop the network dependency for that path",
					Severity:    spec.SeverityCritical,
				})
			}

			if containsAny(reqLower, encryptionTerms) {
				if budget, ok := latencyBudgetMs(conLower); ok && budget < encryptionLatencyFloorMs {
					found = append(found, Contradiction{
						ItemA:       req,
						ItemB:       con,
						Description: "requirement mandates encryption but a constraint sets a latency budget under 50ms",
						Resolution:  "Re-measure the budget with encryption enabled, or carve the hot path out of it",
						Severity:    spec.SeverityWarning,
					})
				}
			}
		}
	}

	return found
}

// SpecConflicts runs the pairwise rules over an ExecutableSpec, treating
// scenario text as the requirement side and constraint rules as the
// constraint side.
func SpecConflicts(s *spec.ExecutableSpec) []Contradiction {
	var requirements []string
	for _, sc := range s.Verification {
		parts := []string{sc.Name}
		parts = append(parts, sc.When...)
		parts = append(parts, sc.Then...)
		requirements = append(requirements, strings.Join(parts, " "))
	}
	if strings.TrimSpace(s.Narrative.Objective) != "" {
		requirements = append(requirements, s.Narrative.Objective)
	}

	var constraints []string
	for _, c := range s.Constraints {
		constraints = append(constraints, c.Rule)
	}

	return DetectConflicts(requirements, constraints)
}

// ScoreContradictions maps a contradiction count to a check score:
// 95 when clean, otherwise 25 off per contradiction, floored at 0.
func ScoreContradictions(count int) int {
	if count == 0 {
		return contradictionCleanScore
	}
	score := 100 - contradictionPenalty*count
	if score < 0 {
		score = 0
	}
	return score
}

// DegradedContradiction is the fallback when the reasoning backend
// fails. Deterministic findings are preserved.
func DegradedContradiction(found []Contradiction, reason string) CheckResult {
	result := ContradictionResult(found)
	result.Passed = true
	result.Score = NeutralContradictionScore
	result.Issues = append(result.Issues, "contradiction analysis could not complete: "+reason)
	result.Suggestions = append(result.Suggestions, "Re-run the simulation once the reasoning backend is reachable")
	return result
}

// ContradictionResult folds contradictions into the uniform check shape.
func ContradictionResult(found []Contradiction) CheckResult {
	score := ScoreContradictions(len(found))
	var issues, suggestions []string
	for _, c := range found {
		issues = append(issues, string(c.Severity)+" contradiction: "+c.Description)
		suggestions = append(suggestions, c.Resolution)
	}
	return CheckResult{
		Passed:      score >= contradictionPassScore,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// latencyBudgetMs extracts the first "<n>ms" figure from a constraint.
func latencyBudgetMs(text string) (int, bool) {
	m := latencyBudgetExpr.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
