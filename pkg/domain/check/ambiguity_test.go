package check

import (
	"strings"
	"testing"
)

func TestScanAmbiguousTerms(t *testing.T) {
	issues, suggestions := ScanAmbiguousTerms("The API must be fast and secure.")

	if len(issues) != 2 {
		t.Fatalf("issues = %v, want 2 entries", issues)
	}
	if len(issues) != len(suggestions) {
		t.Errorf("issues (%d) and suggestions (%d) are not paired", len(issues), len(suggestions))
	}
	if !strings.Contains(issues[0], "fast") {
		t.Errorf("first issue = %q, want mention of \"fast\"", issues[0])
	}
}

func TestScanAmbiguousTerms_CleanText(t *testing.T) {
	issues, suggestions := ScanAmbiguousTerms("Respond within 200ms at p95 under 1000 rps.")
	if len(issues) != 0 || len(suggestions) != 0 {
		t.Errorf("got issues %v, want none", issues)
	}
}

func TestScoreAmbiguityLevel(t *testing.T) {
	tests := []struct {
		level AmbiguityLevel
		want  int
	}{
		{AmbiguityLow, 90},
		{AmbiguityMedium, 60},
		{AmbiguityHigh, 30},
		{AmbiguityLevel("garbled"), NeutralAmbiguityScore},
	}

	for _, tt := range tests {
		if got := ScoreAmbiguityLevel(tt.level); got != tt.want {
			t.Errorf("ScoreAmbiguityLevel(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestDegradedAmbiguity(t *testing.T) {
	dictIssues := []string{"ambiguous term \"fast\" found in spec text"}
	dictSuggestions := []string{"Replace it"}

	result := DegradedAmbiguity(dictIssues, dictSuggestions, "backend unreachable")

	if !result.Passed {
		t.Error("degraded result must pass")
	}
	if result.Score != NeutralAmbiguityScore {
		t.Errorf("Score = %d, want %d", result.Score, NeutralAmbiguityScore)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("Issues = %v, want dictionary issue plus degradation notice", result.Issues)
	}
	if !strings.Contains(result.Issues[1], "could not complete") {
		t.Errorf("Issues[1] = %q, want degradation notice", result.Issues[1])
	}
	if len(result.Issues) != len(result.Suggestions) {
		t.Error("degraded result broke the issue/suggestion pairing")
	}
}
