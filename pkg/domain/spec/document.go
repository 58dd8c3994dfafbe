package spec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a compiled document.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusLocked Status = "locked"
)

// Priority ranks a requirement per RFC 2119 usage.
type Priority string

const (
	PriorityMust   Priority = "MUST"
	PriorityShould Priority = "SHOULD"
	PriorityMay    Priority = "MAY"
)

// Requirement is a single implementable statement inside a compiled
// document. Every requirement must cite the raw input it came from.
type Requirement struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	SourceCitation     string   `json:"source_citation"`
	Priority           Priority `json:"priority"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

// Layers is the compiled content of a document.
type Layers struct {
	Context      string        `json:"context"`
	Requirements []Requirement `json:"requirements"`
	Constraints  []string      `json:"constraints"`
	Risks        []string      `json:"risks"`
}

// SpecDocument is the persisted, versioned, hashed form of an
// ExecutableSpec. Once Status reaches locked the document is write-once.
type SpecDocument struct {
	ID      string `json:"id"`
	Feature string `json:"feature"`
	Version string `json:"version"`
	Hash    string `json:"hash"`
	Layers  Layers `json:"layers"`
	Status  Status `json:"status"`

	ApprovedBy  string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	LockedAt    *time.Time `json:"locked_at,omitempty"`
	ContentHash string     `json:"content_hash,omitempty"`
}

// hashPayload fixes the field set and order that participate in the
// content hash. Approval metadata is deliberately excluded.
type hashPayload struct {
	ID      string `json:"id"`
	Feature string `json:"feature"`
	Version string `json:"version"`
	Layers  Layers `json:"layers"`
}

// ComputeHash returns the SHA-256 of the canonical JSON serialization of
// {id, feature, version, layers}. Struct field order makes the
// serialization deterministic.
func ComputeHash(d *SpecDocument) string {
	data, _ := json.Marshal(hashPayload{
		ID:      d.ID,
		Feature: d.Feature,
		Version: d.Version,
		Layers:  d.Layers,
	})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the hash from stored content and compares. A
// mismatch means the document was tampered with or is stale.
func (d *SpecDocument) Verify() bool {
	return d.Hash == ComputeHash(d)
}

// BodyHash digests the full persisted JSON body of the document. The
// approval gate stamps this as the content hash at lock time.
func (d *SpecDocument) BodyHash() string {
	data, _ := json.Marshal(d)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Validate checks structural integrity. Scoring penalties are handled by
// the checks; this only rejects what no check can tolerate.
func (d *SpecDocument) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return &ValidationError{Field: "id", Reason: "document id is required"}
	}
	if strings.TrimSpace(d.Feature) == "" {
		return &ValidationError{Field: "feature", Reason: "feature name is required"}
	}
	for i, r := range d.Layers.Requirements {
		if strings.TrimSpace(r.SourceCitation) == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("layers.requirements[%d].source_citation", i),
				Reason: "requirement " + r.ID + " has no source citation",
			}
		}
	}
	return nil
}

// Compile turns a draft ExecutableSpec into a versioned SpecDocument.
// When prev is non-nil the patch version is incremented; identity is
// kept while prev is still a draft, but a locked prev is never mutated:
// its successor gets a fresh id in the same version lineage. The
// compiled document must validate, so a spec without context pointers
// cannot compile: every requirement needs a citation.
func Compile(es *ExecutableSpec, feature string, prev *SpecDocument) (*SpecDocument, error) {
	if strings.TrimSpace(feature) == "" {
		return nil, &ValidationError{Field: "feature", Reason: "feature name is required"}
	}

	doc := &SpecDocument{
		ID:      uuid.New().String(),
		Feature: feature,
		Version: "0.1.0",
		Status:  StatusDraft,
	}
	if prev != nil {
		doc.Version = bumpPatch(prev.Version)
		if prev.Status != StatusLocked {
			doc.ID = prev.ID
		}
	}

	doc.Layers.Context = strings.TrimSpace(es.Narrative.Objective + "\n\n" + es.Narrative.Rationale)

	for i, sc := range es.Verification {
		req := Requirement{
			ID:                 fmt.Sprintf("req-%d", i+1),
			Text:               sc.Name,
			Priority:           PriorityMust,
			AcceptanceCriteria: append([]string{}, sc.Then...),
		}
		if len(es.ContextPointers) > 0 {
			p := es.ContextPointers[i%len(es.ContextPointers)]
			req.SourceCitation = p.Source + ": " + p.Snippet
		}
		doc.Layers.Requirements = append(doc.Layers.Requirements, req)
	}

	for _, c := range es.Constraints {
		doc.Layers.Constraints = append(doc.Layers.Constraints, c.Rule)
		if c.Severity == SeverityCritical {
			risk := c.Rationale
			if strings.TrimSpace(risk) == "" {
				risk = "violation of: " + c.Rule
			}
			doc.Layers.Risks = append(doc.Layers.Risks, risk)
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	doc.Hash = ComputeHash(doc)
	return doc, nil
}

// bumpPatch increments the patch component of a semver-like version.
// Unparsable versions restart at 0.1.0.
func bumpPatch(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "0.1.0"
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return "0.1.0"
	}
	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1)
}
