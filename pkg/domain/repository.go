package domain

import (
	"github.com/specvet/specvet/pkg/domain/quality"
	"github.com/specvet/specvet/pkg/domain/spec"
)

// Repository is the engine's view of the store. The engine assumes no
// transactional guarantees beyond the conditional update used by the
// approval gate.
type Repository interface {
	// SaveDraft persists the working ExecutableSpec.
	SaveDraft(s *spec.ExecutableSpec) error
	// LoadDraft returns the working ExecutableSpec, or ErrSpecNotFound.
	LoadDraft() (*spec.ExecutableSpec, error)

	// SaveDocument upserts a compiled document. Locked documents are
	// rejected with ErrSpecLocked.
	SaveDocument(doc *spec.SpecDocument) error
	// LoadDocument fetches a document by id, or ErrSpecNotFound.
	LoadDocument(id string) (*spec.SpecDocument, error)
	// ListDocuments returns every stored document.
	ListDocuments() ([]*spec.SpecDocument, error)
	// LockDocument applies the approval fields under compare-and-set
	// semantics: it fails with ErrSpecLocked if the stored status is no
	// longer draft at write time, and ErrSpecNotFound for unknown ids.
	LockDocument(id string, locked *spec.SpecDocument) error

	// SaveScores persists all five quality scores as a unit.
	SaveScores(specID string, scores quality.SpecQualityScores) error
	// LoadScores fetches persisted scores, or ErrSpecNotFound.
	LoadScores(specID string) (*quality.SpecQualityScores, error)

	// RecordEvent appends to the audit log.
	RecordEvent(event Event) error
	// LoadEvents returns the audit log in append order.
	LoadEvents() ([]Event, error)
}
