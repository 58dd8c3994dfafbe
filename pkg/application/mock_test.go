package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/specvet/specvet/pkg/domain"
	"github.com/specvet/specvet/pkg/domain/ai"
	"github.com/specvet/specvet/pkg/domain/quality"
	"github.com/specvet/specvet/pkg/domain/spec"
)

// memRepo is an in-memory domain.Repository for service tests.
type memRepo struct {
	mu     sync.Mutex
	draft  *spec.ExecutableSpec
	docs   map[string]*spec.SpecDocument
	scores map[string]quality.SpecQualityScores
	events []domain.Event

	failScores bool
	failEvents bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		docs:   map[string]*spec.SpecDocument{},
		scores: map[string]quality.SpecQualityScores{},
	}
}

func (r *memRepo) SaveDraft(s *spec.ExecutableSpec) error {
	r.draft = s
	return nil
}

func (r *memRepo) LoadDraft() (*spec.ExecutableSpec, error) {
	if r.draft == nil {
		return nil, spec.ErrSpecNotFound
	}
	return r.draft, nil
}

func (r *memRepo) SaveDocument(doc *spec.SpecDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.docs[doc.ID]; ok && existing.Status == spec.StatusLocked {
		return spec.ErrSpecLocked
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *memRepo) LoadDocument(id string) (*spec.SpecDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, spec.ErrSpecNotFound
	}
	return doc, nil
}

func (r *memRepo) ListDocuments() ([]*spec.SpecDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*spec.SpecDocument
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *memRepo) LockDocument(id string, locked *spec.SpecDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.docs[id]
	if !ok {
		return spec.ErrSpecNotFound
	}
	if current.Status == spec.StatusLocked {
		return spec.ErrSpecLocked
	}
	r.docs[id] = locked
	return nil
}

func (r *memRepo) SaveScores(specID string, scores quality.SpecQualityScores) error {
	if r.failScores {
		return fmt.Errorf("scores store unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[specID] = scores
	return nil
}

func (r *memRepo) LoadScores(specID string) (*quality.SpecQualityScores, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[specID]
	if !ok {
		return nil, spec.ErrSpecNotFound
	}
	return &s, nil
}

func (r *memRepo) RecordEvent(event domain.Event) error {
	if r.failEvents {
		return fmt.Errorf("audit sink unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *memRepo) LoadEvents() ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event{}, r.events...), nil
}

// scriptedProvider answers each prompt kind with a canned payload.
type scriptedProvider struct {
	ambiguityJSON     string
	contradictionJSON string
	adversaryJSON     string
	err               error
}

func (p *scriptedProvider) ID() string { return "scripted" }

func (p *scriptedProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	var text string
	switch {
	case strings.Contains(req.Prompt, "ambiguous phrasing"):
		text = p.ambiguityJSON
	case strings.Contains(req.Prompt, "cannot both hold"):
		text = p.contradictionJSON
	case strings.Contains(req.Prompt, "adversarial reviewer"):
		text = p.adversaryJSON
	}
	return &ai.CompletionResponse{Text: text, Model: "scripted"}, nil
}

// cleanSpec returns a draft that passes every deterministic check.
func cleanSpec() *spec.ExecutableSpec {
	return &spec.ExecutableSpec{
		Narrative: spec.Narrative{
			Title:     "Checkout payment retries",
			Objective: "Retry failed card payments up to three times with exponential backoff.",
			Rationale: "Transient gateway errors currently drop 2% of checkout attempts.",
		},
		ContextPointers: []spec.ContextPointer{
			{Source: "slack:#payments", Snippet: "gateway 502s spike every Friday evening"},
			{Source: "jira:PAY-841", Snippet: "add retry with backoff to card capture"},
			{Source: "gong:call-1193", Snippet: "customer asked for fewer failed checkouts"},
		},
		Constraints: []spec.Constraint{
			{Rule: "Never double-charge a card", Severity: spec.SeverityCritical, Rationale: "Chargebacks cost more than lost sales"},
			{Rule: "Capture latency budget is 900ms end to end", Severity: spec.SeverityWarning, Rationale: "Checkout page shows a spinner"},
		},
		Verification: []spec.Scenario{
			{
				Name:  "retry succeeds after one transient failure",
				Given: []string{"a card capture that fails once with a 502"},
				When:  []string{"the capture is retried"},
				Then:  []string{"the second attempt completes and exactly one charge exists"},
			},
			{
				Name:  "gives up after three attempts",
				Given: []string{"a card capture that always fails"},
				When:  []string{"three retries are exhausted"},
				Then:  []string{"the order is marked payment-failed and zero charges exist"},
			},
		},
	}
}
