// Package check implements the pre-code quality checks that decide
// whether an Executable Specification is ready to hand to a coding
// agent. Every check returns the same CheckResult shape so the
// aggregator can combine them generically.
package check

// CheckResult is the uniform contract every check returns.
//
// Issues and Suggestions are index-paired: issue i always has its
// remediation at suggestion i. Report rendering relies on this.
type CheckResult struct {
	Passed      bool     `json:"passed"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// ScenarioFailure attributes a simulation failure to a named scenario.
type ScenarioFailure struct {
	Scenario string `json:"scenario"`
	Reason   string `json:"reason"`
}

// CheckSet groups the four check results by dimension.
type CheckSet struct {
	Completeness  CheckResult `json:"completeness"`
	Ambiguity     CheckResult `json:"ambiguity"`
	Contradiction CheckResult `json:"contradiction"`
	Testability   CheckResult `json:"testability"`
}

// SimulationResult is the pre-code verdict for one spec.
type SimulationResult struct {
	Passed          bool              `json:"passed"`
	TotalScenarios  int               `json:"total_scenarios"`
	PassedScenarios int               `json:"passed_scenarios"`
	FailedScenarios int               `json:"failed_scenarios"`
	Failures        []ScenarioFailure `json:"failures"`
	Suggestions     []string          `json:"suggestions"`
	CoverageScore   int               `json:"coverage_score"`
	Checks          CheckSet          `json:"checks"`
}
