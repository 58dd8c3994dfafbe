package check

import (
	"strings"
	"testing"

	"github.com/specvet/specvet/pkg/domain/spec"
)

func TestDetectConflicts_OfflineVsNetworkIsCritical(t *testing.T) {
	found := DetectConflicts(
		[]string{"The editor must work offline"},
		[]string{"All saves go through the network sync API"},
	)

	if len(found) != 1 {
		t.Fatalf("found = %d contradictions, want 1", len(found))
	}
	if found[0].Severity != spec.SeverityCritical {
		t.Errorf("Severity = %s, want critical", found[0].Severity)
	}
}

func TestDetectConflicts_UnrelatedPairIsClean(t *testing.T) {
	found := DetectConflicts(
		[]string{"The editor must autosave every minute"},
		[]string{"Saves are written to local disk"},
	)

	if len(found) != 0 {
		t.Errorf("found = %v, want none", found)
	}
}

func TestDetectConflicts_RealTimeVsThrottle(t *testing.T) {
	found := DetectConflicts(
		[]string{"Dashboard updates in real-time"},
		[]string{"Updates are rate limited to one per minute"},
	)

	if len(found) != 1 {
		t.Fatalf("found = %d contradictions, want 1", len(found))
	}
	if found[0].Severity != spec.SeverityWarning {
		t.Errorf("Severity = %s, want warning", found[0].Severity)
	}
}

func TestDetectConflicts_EncryptionVsLatencyBudget(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       int
	}{
		{"budget under 50ms conflicts", "End-to-end budget is 20ms", 1},
		{"budget at 50ms is fine", "End-to-end budget is 50ms", 0},
		{"budget above 50ms is fine", "End-to-end budget is 400ms", 0},
		{"no latency figure is fine", "Budget is generous", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := DetectConflicts(
				[]string{"All payloads must be encrypted at rest and in transit"},
				[]string{tt.constraint},
			)
			if len(found) != tt.want {
				t.Errorf("found = %d contradictions, want %d", len(found), tt.want)
			}
		})
	}
}

func TestDetectConflicts_EveryPairIsCompared(t *testing.T) {
	// Two requirements against two constraints: both offline
	// requirements must each flag the network constraint, without
	// dedupe or ordering assumptions.
	found := DetectConflicts(
		[]string{"works offline", "syncs offline edits later"},
		[]string{"requires network connectivity", "stores data locally"},
	)

	if len(found) != 2 {
		t.Errorf("found = %d contradictions, want 2", len(found))
	}
}

func TestScoreContradictions(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 95},
		{1, 75},
		{2, 50},
		{4, 0},
		{5, 0},
	}

	for _, tt := range tests {
		if got := ScoreContradictions(tt.count); got != tt.want {
			t.Errorf("ScoreContradictions(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestContradictionResult(t *testing.T) {
	found := []Contradiction{
		{Description: "offline vs network", Resolution: "split the offline path", Severity: spec.SeverityCritical},
	}

	result := ContradictionResult(found)
	if result.Score != 75 {
		t.Errorf("Score = %d, want 75", result.Score)
	}
	if !result.Passed {
		t.Error("Passed = false at 75, want true")
	}
	if len(result.Issues) != 1 || len(result.Suggestions) != 1 {
		t.Error("issues and suggestions must pair one per contradiction")
	}
	if !strings.Contains(result.Issues[0], "critical") {
		t.Errorf("Issues[0] = %q, want severity prefix", result.Issues[0])
	}
}

func TestDegradedContradiction_KeepsDeterministicFindings(t *testing.T) {
	found := DetectConflicts(
		[]string{"works offline"},
		[]string{"requires network access"},
	)

	result := DegradedContradiction(found, "backend timed out")
	if !result.Passed {
		t.Error("degraded result must pass")
	}
	if result.Score != NeutralContradictionScore {
		t.Errorf("Score = %d, want %d", result.Score, NeutralContradictionScore)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("Issues = %v, want deterministic finding plus degradation notice", result.Issues)
	}
}

func TestSpecConflicts_UsesScenarioAndConstraintText(t *testing.T) {
	s := &spec.ExecutableSpec{
		Verification: []spec.Scenario{
			{Name: "offline editing", When: []string{"the user edits offline"}, Then: []string{"changes are kept"}},
		},
		Constraints: []spec.Constraint{
			{Rule: "All writes go to the network store"},
		},
	}

	found := SpecConflicts(s)
	if len(found) != 1 {
		t.Fatalf("found = %d contradictions, want 1", len(found))
	}
	if found[0].Severity != spec.SeverityCritical {
		t.Errorf("Severity = %s, want critical", found[0].Severity)
	}
}
