package check

import (
	"fmt"
	"strings"

	"github.com/specvet/specvet/pkg/domain/spec"
)

// Penalty table for the testability check. Vague wording and
// unmeasurable wording are independent, additive deductions: a `then`
// clause can need both a numeric threshold and an objective verb.
const (
	penaltyVagueAdjective     = 10
	penaltyUnmeasurable       = 15
	penaltyIncompleteScenario = 20

	testabilityPassScore = 60
)

// vagueAdjectives are qualifiers with no measurable threshold.
var vagueAdjectives = []string{
	"appropriate",
	"fast",
	"intuitive",
	"nice",
	"reasonable",
	"good",
	"simple",
	"efficient",
	"user-friendly",
}

// unmeasurableMarkers are phrasings no assertion can verify.
var unmeasurableMarkers = []string{
	"feel",
	"seems",
	"looks",
	"should be",
	"kind of",
}

// Testability scores how machine-checkable the verification scenarios
// are. Per-scenario deductions are not floored; only the final running
// total is clamped at 0.
func Testability(scenarios []spec.Scenario) CheckResult {
	score := 100
	var issues, suggestions []string

	deduct := func(points int, issue, suggestion string) {
		score -= points
		issues = append(issues, issue)
		suggestions = append(suggestions, suggestion)
	}

	for i, sc := range scenarios {
		name := sc.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}

		then := strings.ToLower(strings.Join(sc.Then, " "))

		for _, adj := range vagueAdjectives {
			if strings.Contains(then, adj) {
				deduct(penaltyVagueAdjective,
					fmt.Sprintf("%s: vague adjective %q in then clause", name, adj),
					fmt.Sprintf("Replace %q with a numeric threshold or an enumerable outcome", adj))
			}
		}

		for _, marker := range unmeasurableMarkers {
			if strings.Contains(then, marker) {
				deduct(penaltyUnmeasurable,
					fmt.Sprintf("%s: unmeasurable phrasing %q in then clause", name, marker),
					fmt.Sprintf("Rewrite %q as an objectively observable assertion", marker))
			}
		}

		if len(sc.Given) == 0 || len(sc.When) == 0 || len(sc.Then) == 0 {
			deduct(penaltyIncompleteScenario,
				fmt.Sprintf("%s: missing given, when or then", name),
				"Every scenario needs all three of given/when/then to be executable")
		}
	}

	if score < 0 {
		score = 0
	}

	return CheckResult{
		Passed:      score >= testabilityPassScore,
		Score:       score,
		Issues:      issues,
		Suggestions: suggestions,
	}
}
