package application

import (
	"fmt"
	"os"

	"github.com/specvet/specvet/pkg/domain"
	"github.com/specvet/specvet/pkg/domain/check"
	"github.com/specvet/specvet/pkg/domain/spec"
)

// CompileService turns the working draft into a versioned, hashed
// SpecDocument and persists it.
type CompileService struct {
	repo  domain.Repository
	audit domain.AuditLogger
}

func NewCompileService(repo domain.Repository, audit domain.AuditLogger) *CompileService {
	return &CompileService{repo: repo, audit: audit}
}

// Compile builds the document for feature from the stored draft,
// reusing identity and bumping the patch version when an unlocked
// document for the feature already exists. Deterministic contradiction
// rules run over the compiled requirement/constraint pairs and land in
// the risk layer.
func (s *CompileService) Compile(feature string) (*spec.SpecDocument, error) {
	draft, err := s.repo.LoadDraft()
	if err != nil {
		return nil, err
	}

	prev, err := s.latestFor(feature)
	if err != nil {
		return nil, err
	}

	doc, err := spec.Compile(draft, feature, prev)
	if err != nil {
		return nil, err
	}

	var requirements []string
	for _, r := range doc.Layers.Requirements {
		requirements = append(requirements, r.Text)
	}
	for _, c := range check.DetectConflicts(requirements, doc.Layers.Constraints) {
		if c.Severity == spec.SeverityCritical {
			doc.Layers.Risks = append(doc.Layers.Risks, c.Description)
		}
	}
	// Risks changed after hashing inside Compile, so seal again.
	doc.Hash = spec.ComputeHash(doc)

	if err := s.repo.SaveDocument(doc); err != nil {
		return nil, fmt.Errorf("failed to save compiled document: %w", err)
	}

	if _, err := s.audit.Log("spec.compiled", "system", map[string]interface{}{
		"spec_id": doc.ID,
		"feature": doc.Feature,
		"version": doc.Version,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record compile audit event: %v\n", err)
	}

	return doc, nil
}

// latestFor finds the newest document for a feature regardless of
// status. spec.Compile decides whether its identity can be reused.
func (s *CompileService) latestFor(feature string) (*spec.SpecDocument, error) {
	docs, err := s.repo.ListDocuments()
	if err != nil {
		return nil, err
	}

	var newest *spec.SpecDocument
	for _, d := range docs {
		if d.Feature != feature {
			continue
		}
		if newest == nil || versionLess(newest.Version, d.Version) {
			newest = d
		}
	}
	return newest, nil
}

func versionLess(a, b string) bool {
	// Lexicographic compare is wrong past single digits, but versions
	// here only ever differ in patch; compare numerically per part.
	var aMaj, aMin, aPat, bMaj, bMin, bPat int
	fmt.Sscanf(a, "%d.%d.%d", &aMaj, &aMin, &aPat)
	fmt.Sscanf(b, "%d.%d.%d", &bMaj, &bMin, &bPat)
	if aMaj != bMaj {
		return aMaj < bMaj
	}
	if aMin != bMin {
		return aMin < bMin
	}
	return aPat < bPat
}
