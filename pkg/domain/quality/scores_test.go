package quality

import (
	"testing"

	"github.com/specvet/specvet/pkg/domain/spec"
)

func acceptedSpec() *spec.ExecutableSpec {
	return &spec.ExecutableSpec{
		Narrative: spec.Narrative{
			Title:     "Order export batching",
			Objective: "Batch completed orders into nightly export files for the warehouse",
			Rationale: "The warehouse system ingests files, not events, and bills per upload",
		},
		ContextPointers: []spec.ContextPointer{
			{Source: "internal/export/batch.go", Snippet: "func FlushBatch(ctx context.Context)"},
			{Source: "docs/warehouse-contract.md", Snippet: "one file per calendar day"},
			{Source: "internal/export/schedule.go", Snippet: "cron.Schedule(nightly)"},
		},
		Constraints: []spec.Constraint{
			{Rule: "Export files never exceed 10000 rows", Severity: spec.SeverityCritical},
			{Rule: "A day is exported exactly once", Severity: spec.SeverityCritical},
		},
		Verification: []spec.Scenario{
			{
				Name:  "nightly flush",
				Given: []string{"12 completed orders for the day"},
				When:  []string{"the nightly schedule fires"},
				Then:  []string{"one file with 12 rows is written"},
			},
			{
				Name:  "empty day",
				Given: []string{"no completed orders"},
				When:  []string{"the nightly schedule fires"},
				Then:  []string{"no file is written and the day is marked exported"},
			},
			{
				Name:  "oversized day",
				Given: []string{"10500 completed orders"},
				When:  []string{"the nightly schedule fires"},
				Then:  []string{"two files are written, 10000 rows then 500 rows"},
			},
		},
	}
}

func TestCompletenessScore_FullSpec(t *testing.T) {
	if got := CompletenessScore(acceptedSpec()); got != 100 {
		t.Errorf("CompletenessScore() = %d, want 100", got)
	}
}

func TestCompletenessScore_ProportionalCredit(t *testing.T) {
	s := acceptedSpec()
	s.ContextPointers = s.ContextPointers[:1]
	// 40 narrative + 20/3 pointers + 20 constraints + 20 scenarios.
	if got := CompletenessScore(s); got != 87 {
		t.Errorf("CompletenessScore() = %d, want 87", got)
	}
}

func TestCompletenessScore_EmptySpec(t *testing.T) {
	if got := CompletenessScore(&spec.ExecutableSpec{}); got != 0 {
		t.Errorf("CompletenessScore() = %d, want 0", got)
	}
}

func TestGroundingScore(t *testing.T) {
	tests := []struct {
		name     string
		pointers []spec.ContextPointer
		want     int
	}{
		{"no pointers is ungrounded", nil, 0},
		{
			"all cited",
			[]spec.ContextPointer{
				{Source: "a.go", Snippet: "x"},
				{Source: "b.go", Snippet: "y"},
			},
			100,
		},
		{
			"snippet missing drops the pointer",
			[]spec.ContextPointer{
				{Source: "a.go", Snippet: "x"},
				{Source: "b.go"},
			},
			50,
		},
		{
			"one of three cited",
			[]spec.ContextPointer{
				{Source: "a.go", Snippet: "x"},
				{Source: "b.go"},
				{Snippet: "z"},
			},
			33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroundingScore(tt.pointers); got != tt.want {
				t.Errorf("GroundingScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTestabilityScore(t *testing.T) {
	full := acceptedSpec().Verification

	if got := TestabilityScore(full); got != 100 {
		t.Errorf("TestabilityScore(full) = %d, want 100", got)
	}

	broken := append([]spec.Scenario{}, full...)
	broken[1].Then = nil
	if got := TestabilityScore(broken); got != 67 {
		t.Errorf("TestabilityScore(broken) = %d, want 67", got)
	}

	if got := TestabilityScore(nil); got != 0 {
		t.Errorf("TestabilityScore(nil) = %d, want 0", got)
	}
}

func TestAdversarialScore(t *testing.T) {
	tests := []struct {
		name   string
		review AdversaryReviewResult
		want   int
	}{
		{"clean approval", AdversaryReviewResult{Approved: true}, 100},
		{
			"one blocker",
			AdversaryReviewResult{Issues: []ReviewIssue{{Severity: SeverityBlocker}}},
			80,
		},
		{
			"blocker and two warnings",
			AdversaryReviewResult{Issues: []ReviewIssue{
				{Severity: SeverityBlocker},
				{Severity: SeverityWarning},
				{Severity: SeverityWarning},
			}},
			70,
		},
		{
			"approved with a warning still deducts",
			AdversaryReviewResult{Approved: true, Issues: []ReviewIssue{{Severity: SeverityWarning}}},
			95,
		},
		{
			"six blockers floor at zero",
			AdversaryReviewResult{Issues: []ReviewIssue{
				{Severity: SeverityBlocker}, {Severity: SeverityBlocker},
				{Severity: SeverityBlocker}, {Severity: SeverityBlocker},
				{Severity: SeverityBlocker}, {Severity: SeverityBlocker},
			}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdversarialScore(tt.review); got != tt.want {
				t.Errorf("AdversarialScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluate_WeightsAndRounding(t *testing.T) {
	scores := Evaluate(acceptedSpec(), AdversaryReviewResult{Approved: true})

	if scores.CompletenessScore != 100 || scores.GroundingScore != 100 ||
		scores.TestabilityScore != 100 || scores.AdversarialScore != 100 {
		t.Fatalf("component scores = %+v, want all 100", scores)
	}
	if scores.OverallScore != 100 {
		t.Errorf("OverallScore = %d, want 100", scores.OverallScore)
	}
}

func TestEvaluate_BlendsComponents(t *testing.T) {
	s := acceptedSpec()
	s.ContextPointers = nil

	scores := Evaluate(s, AdversaryReviewResult{Approved: true})

	if scores.GroundingScore != 0 {
		t.Fatalf("GroundingScore = %d, want 0", scores.GroundingScore)
	}
	// completeness 80, grounding 0, testability 100, adversarial 100.
	if scores.CompletenessScore != 80 {
		t.Fatalf("CompletenessScore = %d, want 80", scores.CompletenessScore)
	}
	if scores.OverallScore != 69 {
		t.Errorf("OverallScore = %d, want 69", scores.OverallScore)
	}
}
