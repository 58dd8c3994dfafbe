package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/specvet/specvet/pkg/domain/quality"
)

func TestRunAdversarialReview_ParsesFindings(t *testing.T) {
	repo := newMemRepo()
	provider := &scriptedProvider{
		adversaryJSON: `{"approved": false, "issues": [
			{"severity": "blocker", "description": "no idempotency key, retries can double-charge"},
			{"severity": "warning", "description": "backoff cap unstated"}]}`,
	}
	svc := NewEvaluatorService(repo, provider, NewAuditService(repo))

	review := svc.RunAdversarialReview(context.Background(), cleanSpec())

	if review.Approved {
		t.Error("Approved = true, want false")
	}
	if len(review.Issues) != 2 {
		t.Fatalf("Issues = %d, want 2", len(review.Issues))
	}
	if review.Issues[0].Severity != quality.SeverityBlocker {
		t.Errorf("Issues[0].Severity = %s, want blocker", review.Issues[0].Severity)
	}
}

func TestRunAdversarialReview_DegradesOnBackendFailure(t *testing.T) {
	repo := newMemRepo()
	provider := &scriptedProvider{err: errors.New("connection refused")}
	svc := NewEvaluatorService(repo, provider, NewAuditService(repo))

	review := svc.RunAdversarialReview(context.Background(), cleanSpec())

	if !review.Approved {
		t.Error("degraded review must not block")
	}
	if len(review.Issues) != 1 || review.Issues[0].Severity != quality.SeverityWarning {
		t.Fatalf("Issues = %+v, want one warning", review.Issues)
	}
	if !strings.Contains(review.Issues[0].Description, "could not complete") {
		t.Errorf("Description = %q, want degradation notice", review.Issues[0].Description)
	}
}

func TestEvaluate_PersistsScores(t *testing.T) {
	repo := newMemRepo()
	svc := NewEvaluatorService(repo, nil, NewAuditService(repo))

	scores := svc.Evaluate("spec-1", cleanSpec(), quality.AdversaryReviewResult{Approved: true})

	if scores.AdversarialScore != 100 {
		t.Errorf("AdversarialScore = %d, want 100", scores.AdversarialScore)
	}
	stored, err := repo.LoadScores("spec-1")
	if err != nil {
		t.Fatalf("LoadScores() error = %v", err)
	}
	if *stored != scores {
		t.Errorf("stored = %+v, returned = %+v", *stored, scores)
	}
}

func TestEvaluate_ReturnsScoresWhenStoreIsDown(t *testing.T) {
	repo := newMemRepo()
	repo.failScores = true
	svc := NewEvaluatorService(repo, nil, NewAuditService(repo))

	scores := svc.Evaluate("spec-1", cleanSpec(), quality.AdversaryReviewResult{Approved: true})

	if scores.OverallScore == 0 {
		t.Error("scores must be computed even when persistence fails")
	}
}

func TestEvaluate_RecordsAuditEvent(t *testing.T) {
	repo := newMemRepo()
	svc := NewEvaluatorService(repo, nil, NewAuditService(repo))

	scores := svc.Evaluate("spec-1", cleanSpec(), quality.AdversaryReviewResult{Approved: true})

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Action != "spec.evaluated" {
		t.Errorf("Action = %s, want spec.evaluated", e.Action)
	}
	if e.Metadata["overall_score"] != scores.OverallScore {
		t.Error("event must carry the overall score")
	}
}
