// Package quality implements the post-hoc outcome scoring applied to an
// accepted spec after adversarial review. Its formulas deliberately
// differ from the pre-code simulation pass: the simulator estimates risk
// before generation, this package grades the accepted artifact. The two
// weight tables must never be merged.
package quality

import (
	"math"
	"strings"

	"github.com/specvet/specvet/pkg/domain/spec"
)

// SpecQualityScores is persisted as a unit against the spec's identity.
type SpecQualityScores struct {
	CompletenessScore int `json:"completeness_score"`
	GroundingScore    int `json:"grounding_score"`
	TestabilityScore  int `json:"testability_score"`
	AdversarialScore  int `json:"adversarial_score"`
	OverallScore      int `json:"overall_score"`
}

// Issue severities raised by the adversarial reviewer.
const (
	SeverityBlocker = "blocker"
	SeverityWarning = "warning"
)

// ReviewIssue is one severity-tagged finding from the adversarial pass.
type ReviewIssue struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// AdversaryReviewResult is the outcome of the external adversarial
// review, consumed only by this package.
type AdversaryReviewResult struct {
	Approved bool          `json:"approved"`
	Issues   []ReviewIssue `json:"issues"`
}

// Credit table for the outcome completeness score. Unlike the
// simulator's penalty-based formula this one grants graded credit, full
// at the listed counts and proportional below.
const (
	creditTitle     = 14
	creditObjective = 13
	creditRationale = 13

	creditPointers     = 20
	fullCreditPointers = 3

	creditConstraints     = 20
	fullCreditConstraints = 2

	creditScenarios     = 20
	fullCreditScenarios = 3

	minTitleLen     = 5
	minNarrativeLen = 20
)

// Deductions for adversarial findings.
const (
	blockerDeduction = 20
	warningDeduction = 5
)

// Overall weight table for the outcome score.
const (
	outcomeWeightCompleteness = 0.30
	outcomeWeightGrounding    = 0.25
	outcomeWeightTestability  = 0.25
	outcomeWeightAdversarial  = 0.20
)

// CompletenessScore grants weighted credit per populated layer.
func CompletenessScore(s *spec.ExecutableSpec) int {
	points := 0.0

	if len(strings.TrimSpace(s.Narrative.Title)) >= minTitleLen {
		points += creditTitle
	}
	if len(strings.TrimSpace(s.Narrative.Objective)) >= minNarrativeLen {
		points += creditObjective
	}
	if len(strings.TrimSpace(s.Narrative.Rationale)) >= minNarrativeLen {
		points += creditRationale
	}

	points += proportionalCredit(len(s.ContextPointers), fullCreditPointers, creditPointers)
	points += proportionalCredit(len(s.Constraints), fullCreditConstraints, creditConstraints)
	points += proportionalCredit(len(s.Verification), fullCreditScenarios, creditScenarios)

	return int(math.Round(points))
}

// GroundingScore is the fraction of context pointers that carry both a
// source and a snippet. No pointers means no grounding at all.
func GroundingScore(pointers []spec.ContextPointer) int {
	if len(pointers) == 0 {
		return 0
	}
	cited := 0
	for _, p := range pointers {
		if p.Cited() {
			cited++
		}
	}
	return int(math.Round(100 * float64(cited) / float64(len(pointers))))
}

// TestabilityScore is the fraction of scenarios that are named and carry
// all of given/when/then.
func TestabilityScore(scenarios []spec.Scenario) int {
	if len(scenarios) == 0 {
		return 0
	}
	wellFormed := 0
	for _, sc := range scenarios {
		if sc.WellFormed() {
			wellFormed++
		}
	}
	return int(math.Round(100 * float64(wellFormed) / float64(len(scenarios))))
}

// AdversarialScore converts review findings into a score: a clean
// approval is perfect, otherwise blockers and warnings deduct.
func AdversarialScore(review AdversaryReviewResult) int {
	if review.Approved && len(review.Issues) == 0 {
		return 100
	}
	blockers, warnings := 0, 0
	for _, issue := range review.Issues {
		switch issue.Severity {
		case SeverityBlocker:
			blockers++
		case SeverityWarning:
			warnings++
		}
	}
	score := 100 - blockerDeduction*blockers - warningDeduction*warnings
	if score < 0 {
		score = 0
	}
	return score
}

// Evaluate computes all five scores for an accepted spec.
func Evaluate(s *spec.ExecutableSpec, review AdversaryReviewResult) SpecQualityScores {
	scores := SpecQualityScores{
		CompletenessScore: CompletenessScore(s),
		GroundingScore:    GroundingScore(s.ContextPointers),
		TestabilityScore:  TestabilityScore(s.Verification),
		AdversarialScore:  AdversarialScore(review),
	}
	scores.OverallScore = int(math.Round(
		float64(scores.CompletenessScore)*outcomeWeightCompleteness +
			float64(scores.GroundingScore)*outcomeWeightGrounding +
			float64(scores.TestabilityScore)*outcomeWeightTestability +
			float64(scores.AdversarialScore)*outcomeWeightAdversarial))
	return scores
}

// proportionalCredit grants max credit at fullAt items and a linear
// share below that.
func proportionalCredit(count, fullAt int, max float64) float64 {
	if count >= fullAt {
		return max
	}
	return max * float64(count) / float64(fullAt)
}
