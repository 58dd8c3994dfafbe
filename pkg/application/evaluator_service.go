package application

import (
	"context"
	"fmt"
	"os"

	"github.com/specvet/specvet/pkg/domain"
	"github.com/specvet/specvet/pkg/domain/ai"
	"github.com/specvet/specvet/pkg/domain/quality"
	"github.com/specvet/specvet/pkg/domain/spec"
)

// EvaluatorService computes the post-hoc quality scores for an accepted
// spec. It is a separate scoring pass from the simulator and must stay
// that way: the simulator estimates pre-code risk, this grades the
// accepted artifact after adversarial review.
type EvaluatorService struct {
	repo     domain.Repository
	provider ai.Provider
	audit    domain.AuditLogger
}

func NewEvaluatorService(repo domain.Repository, provider ai.Provider, audit domain.AuditLogger) *EvaluatorService {
	return &EvaluatorService{repo: repo, provider: provider, audit: audit}
}

// RunAdversarialReview drives the reasoning backend through an
// adversarial pass over the spec. Backend failure degrades to an
// unopposed approval carrying a warning, so evaluation never blocks on
// an outage.
func (s *EvaluatorService) RunAdversarialReview(ctx context.Context, es *spec.ExecutableSpec) quality.AdversaryReviewResult {
	resp, err := askAdversary(ctx, s.provider, es.Text())
	if err != nil {
		return quality.AdversaryReviewResult{
			Approved: true,
			Issues: []quality.ReviewIssue{
				{Severity: quality.SeverityWarning, Description: "adversarial review could not complete: " + err.Error()},
			},
		}
	}
	return *resp
}

// Evaluate scores the spec against the review and persists all five
// scores as a unit. Persistence failure is logged, never returned: the
// caller still gets the scores.
func (s *EvaluatorService) Evaluate(specID string, es *spec.ExecutableSpec, review quality.AdversaryReviewResult) quality.SpecQualityScores {
	scores := quality.Evaluate(es, review)

	if err := s.repo.SaveScores(specID, scores); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist quality scores for %s: %v\n", specID, err)
	}

	if _, err := s.audit.Log("spec.evaluated", "system", map[string]interface{}{
		"spec_id":       specID,
		"overall_score": scores.OverallScore,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record evaluation audit event: %v\n", err)
	}

	return scores
}
