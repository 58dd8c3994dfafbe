package check

import "math"

// Weight table for the coverage score. Completeness dominates because a
// hollow spec cannot be rescued by precise wording.
const (
	weightCompleteness  = 0.35
	weightAmbiguity     = 0.25
	weightContradiction = 0.25
	weightTestability   = 0.15

	// CoveragePassScore is the aggregate bar. It is stricter than any
	// individual check: every check can pass on its own while
	// compounding penalties drag the aggregate under it.
	CoveragePassScore = 70
)

// CoverageScore combines the four check scores into one 0-100 number.
func CoverageScore(cs CheckSet) int {
	weighted := float64(cs.Completeness.Score)*weightCompleteness +
		float64(cs.Ambiguity.Score)*weightAmbiguity +
		float64(cs.Contradiction.Score)*weightContradiction +
		float64(cs.Testability.Score)*weightTestability

	score := int(math.Round(weighted))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// EstimatePassed converts the testability score into an estimated count
// of passing scenarios. This is a statistical estimate over the whole
// set, not a per-scenario verdict.
func EstimatePassed(totalScenarios, testabilityScore int) int {
	return int(math.Round(float64(totalScenarios) * float64(testabilityScore) / 100.0))
}
