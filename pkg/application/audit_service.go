// Package application wires the quality checks, the reasoning backend
// and the store into the engine's services.
package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/specvet/specvet/pkg/domain"
)

// AuditService maintains the hash-chained audit trail.
type AuditService struct {
	repo domain.Repository
}

// Compile-time check that AuditService implements AuditLogger.
var _ domain.AuditLogger = (*AuditService)(nil)

func NewAuditService(repo domain.Repository) *AuditService {
	return &AuditService{repo: repo}
}

// Log appends an event continuing the hash chain and returns its id.
func (s *AuditService) Log(action string, actor string, metadata map[string]interface{}) (string, error) {
	events, _ := s.repo.LoadEvents()
	prevHash := ""
	if len(events) > 0 {
		prevHash = events[len(events)-1].Hash
	}

	event := domain.Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
		PrevHash:  prevHash,
	}
	event.Hash = event.CalculateHash()

	if err := s.repo.RecordEvent(event); err != nil {
		return "", err
	}
	return event.ID, nil
}

func (s *AuditService) GetTimeline() ([]domain.Event, error) {
	return s.repo.LoadEvents()
}

// VerifyIntegrity walks the chain and reports every broken link or
// content mismatch.
func (s *AuditService) VerifyIntegrity() ([]string, error) {
	events, err := s.repo.LoadEvents()
	if err != nil {
		return nil, err
	}

	var violations []string
	lastHash := ""

	for i, e := range events {
		if e.PrevHash != lastHash {
			violations = append(violations, fmt.Sprintf("Event %d (%s): PrevHash mismatch. Audit trail broken.", i, e.ID))
		}

		if e.Hash != e.CalculateHash() {
			violations = append(violations, fmt.Sprintf("Event %d (%s): Content hash mismatch. Possible tampering.", i, e.ID))
		}

		lastHash = e.Hash
	}

	return violations, nil
}
