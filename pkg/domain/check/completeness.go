package check

import (
	"strings"

	"github.com/specvet/specvet/pkg/domain/spec"
)

// Penalty table for the completeness check. Scoring starts at 100 and
// each structural gap subtracts a fixed amount.
const (
	penaltyShortTitle     = 15
	penaltyShortObjective = 15
	penaltyShortRationale = 10
	penaltyNoPointers     = 20
	penaltySinglePointer  = 5
	penaltyNoConstraints  = 20
	penaltyNoCritical     = 10
	penaltyNoScenarios    = 20
	penaltySingleScenario = 10

	minTitleLen     = 5
	minObjectiveLen = 20
	minRationaleLen = 20

	completenessPassScore = 60
)

// Completeness scores the structural population of a spec. Deterministic
// and synchronous; an empty layer is a penalty, never an error.
func Completeness(s *spec.ExecutableSpec) CheckResult {
	score := 100
	var issues, suggestions []string

	deduct := func(points int, issue, suggestion string) {
		score -= points
		issues = append(issues, issue)
		suggestions = append(suggestions, suggestion)
	}

	if len(strings.TrimSpace(s.Narrative.Title)) < minTitleLen {
		deduct(penaltyShortTitle,
			"narrative title is missing or too short",
			"Give the spec a descriptive title of at least 5 characters")
	}
	if len(strings.TrimSpace(s.Narrative.Objective)) < minObjectiveLen {
		deduct(penaltyShortObjective,
			"narrative objective is missing or too short",
			"State what the feature should accomplish in at least one full sentence")
	}
	if len(strings.TrimSpace(s.Narrative.Rationale)) < minRationaleLen {
		deduct(penaltyShortRationale,
			"narrative rationale is missing or too short",
			"Explain why this feature is worth building and for whom")
	}

	switch len(s.ContextPointers) {
	case 0:
		deduct(penaltyNoPointers,
			"no context pointers: the spec cites no raw input",
			"Link at least two sources (threads, tickets, transcripts) the spec was derived from")
	case 1:
		deduct(penaltySinglePointer,
			"only one context pointer",
			"Add a second independent source to corroborate the requirement")
	}

	if len(s.Constraints) == 0 {
		deduct(penaltyNoConstraints,
			"no constraints declared",
			"Declare the rules the implementation must respect, with severities")
	} else if !hasCriticalConstraint(s.Constraints) {
		deduct(penaltyNoCritical,
			"constraints exist but none is marked critical",
			"Promote the non-negotiable constraints to critical severity")
	}

	switch len(s.Verification) {
	case 0:
		deduct(penaltyNoScenarios,
			"no verification scenarios",
			"Write Given/When/Then scenarios so the result is machine-checkable")
	case 1:
		deduct(penaltySingleScenario,
			"only one verification scenario",
			"Cover at least the happy path and one failure path")
	}

	if score < 0 {
		score = 0
	}

	return CheckResult{
		Passed:      score >= completenessPassScore,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func hasCriticalConstraint(constraints []spec.Constraint) bool {
	for _, c := range constraints {
		if c.Severity == spec.SeverityCritical {
			return true
		}
	}
	return false
}
