package application

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/specvet/specvet/pkg/domain"
	"github.com/specvet/specvet/pkg/domain/ai"
	"github.com/specvet/specvet/pkg/domain/check"
	"github.com/specvet/specvet/pkg/domain/spec"
)

// SimulatorService is the coverage aggregator: it runs the four quality
// checks over a draft spec and combines them into the pre-code verdict.
// Evaluation is idempotent and side-effect-free except for one audit
// record per run.
type SimulatorService struct {
	provider ai.Provider
	audit    domain.AuditLogger
}

func NewSimulatorService(provider ai.Provider, audit domain.AuditLogger) *SimulatorService {
	return &SimulatorService{provider: provider, audit: audit}
}

// Simulate runs completeness and testability synchronously, then
// ambiguity and contradiction concurrently. The two hybrid checks
// degrade independently: one backend failure never affects the other.
// Results are assembled only after all four complete.
func (s *SimulatorService) Simulate(ctx context.Context, es *spec.ExecutableSpec) (*check.SimulationResult, error) {
	completeness := check.Completeness(es)
	testability := check.Testability(es.Verification)

	var ambiguity, contradiction check.CheckResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ambiguity = s.checkAmbiguity(ctx, es)
	}()
	go func() {
		defer wg.Done()
		contradiction = s.checkContradiction(ctx, es)
	}()
	wg.Wait()

	checks := check.CheckSet{
		Completeness:  completeness,
		Ambiguity:     ambiguity,
		Contradiction: contradiction,
		Testability:   testability,
	}

	coverage := check.CoverageScore(checks)

	var suggestions []string
	issueCount := 0
	for _, c := range []check.CheckResult{completeness, ambiguity, contradiction, testability} {
		issueCount += len(c.Issues)
		suggestions = append(suggestions, c.Suggestions...)
	}

	total := len(es.Verification)
	passedScenarios := check.EstimatePassed(total, testability.Score)
	if passedScenarios > total {
		passedScenarios = total
	}

	var failures []check.ScenarioFailure
	for _, sc := range es.Verification {
		if !sc.WellFormed() {
			failures = append(failures, check.ScenarioFailure{
				Scenario: sc.Name,
				Reason:   "scenario is not executable: missing name, given, when or then",
			})
		}
	}

	result := &check.SimulationResult{
		Passed:          issueCount == 0 && coverage >= check.CoveragePassScore,
		TotalScenarios:  total,
		PassedScenarios: passedScenarios,
		FailedScenarios: total - passedScenarios,
		Failures:        failures,
		Suggestions:     suggestions,
		CoverageScore:   coverage,
		Checks:          checks,
	}

	// Best-effort audit: evaluation must succeed even if auditing is down.
	if _, err := s.audit.Log("spec.simulated", "system", map[string]interface{}{
		"coverage_score": coverage,
		"passed":         result.Passed,
		"issue_count":    issueCount,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record simulation audit event: %v\n", err)
	}

	return result, nil
}

// checkAmbiguity runs the dictionary tier unconditionally, then asks the
// reasoning backend for context-specific findings. Backend failure
// yields the neutral degraded result.
func (s *SimulatorService) checkAmbiguity(ctx context.Context, es *spec.ExecutableSpec) check.CheckResult {
	dictIssues, dictSuggestions := check.ScanAmbiguousTerms(es.Text())

	resp, err := askAmbiguity(ctx, s.provider, es.Text())
	if err != nil {
		return check.DegradedAmbiguity(dictIssues, dictSuggestions, err.Error())
	}

	issues := append([]string{}, dictIssues...)
	suggestions := append([]string{}, dictSuggestions...)
	for _, f := range resp.Findings {
		issue := "ambiguous phrasing"
		if f.Location != "" {
			issue += " at " + f.Location
		}
		issue += ": " + f.Text + " (" + f.Reason + ")"
		issues = append(issues, issue)

		suggestion := f.Suggestion
		if suggestion == "" {
			suggestion = "Rephrase so only one interpretation remains"
		}
		suggestions = append(suggestions, suggestion)
	}

	return check.CheckResult{
		Passed:      resp.OverallAmbiguityLevel != check.AmbiguityHigh,
		Score:       check.ScoreAmbiguityLevel(resp.OverallAmbiguityLevel),
		Issues:      issues,
		Suggestions: suggestions,
	}
}

// checkContradiction runs the deterministic pairwise rules, then asks
// the reasoning backend for cross-cutting contradictions. Backend
// failure keeps the deterministic findings and the neutral score.
func (s *SimulatorService) checkContradiction(ctx context.Context, es *spec.ExecutableSpec) check.CheckResult {
	found := check.SpecConflicts(es)

	resp, err := askContradictions(ctx, s.provider, es.Text())
	if err != nil {
		return check.DegradedContradiction(found, err.Error())
	}

	for _, c := range resp.Contradictions {
		found = append(found, check.Contradiction{
			ItemA:       c.ItemA,
			ItemB:       c.ItemB,
			Description: c.Description,
			Resolution:  c.Resolution,
			Severity:    spec.SeverityWarning,
		})
	}

	return check.ContradictionResult(found)
}
