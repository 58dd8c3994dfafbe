package application

import (
	"fmt"
	"os"
	"time"

	"github.com/specvet/specvet/pkg/domain"
	"github.com/specvet/specvet/pkg/domain/spec"
)

// ApprovalReceipt is returned to the caller after a successful lock.
type ApprovalReceipt struct {
	SpecID      string      `json:"spec_id"`
	Status      spec.Status `json:"status"`
	ApprovedBy  string      `json:"approved_by"`
	ApprovedAt  time.Time   `json:"approved_at"`
	ContentHash string      `json:"content_hash"`
	AuditLogID  string      `json:"audit_log_id"`
}

// ApprovalService is the gate over the draft -> locked transition.
// Locked documents are write-once: a second approval is a conflict, and
// the stored content hash is never touched again.
type ApprovalService struct {
	repo  domain.Repository
	audit domain.AuditLogger
}

func NewApprovalService(repo domain.Repository, audit domain.AuditLogger) *ApprovalService {
	return &ApprovalService{repo: repo, audit: audit}
}

// Approve hashes and locks the document. Unknown ids return
// ErrSpecNotFound; already-locked documents (including the loser of a
// concurrent approval race) return ErrSpecLocked.
func (s *ApprovalService) Approve(specID, approver string) (*ApprovalReceipt, error) {
	if approver == "" {
		return nil, &spec.ValidationError{Field: "approver", Reason: "approver identity is required"}
	}

	doc, err := s.repo.LoadDocument(specID)
	if err != nil {
		return nil, err
	}

	machine, err := spec.NewApprovalMachine(doc.Status, doc.ID)
	if err != nil {
		return nil, err
	}
	if err := machine.Approve(); err != nil {
		return nil, err
	}

	now := time.Now()
	locked := *doc
	locked.Status = spec.StatusLocked
	locked.ApprovedBy = approver
	locked.ApprovedAt = &now
	locked.LockedAt = &now
	locked.ContentHash = doc.BodyHash()

	// Conditional update: the write only lands if the stored status is
	// still draft. The loser of a race gets ErrSpecLocked here.
	if err := s.repo.LockDocument(specID, &locked); err != nil {
		return nil, err
	}

	auditID, err := s.audit.Log("spec.approved", approver, map[string]interface{}{
		"spec_id":     specID,
		"feature":     locked.Feature,
		"version":     locked.Version,
		"hash_prefix": locked.ContentHash[:12],
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record approval audit event: %v\n", err)
	}

	return &ApprovalReceipt{
		SpecID:      specID,
		Status:      locked.Status,
		ApprovedBy:  approver,
		ApprovedAt:  now,
		ContentHash: locked.ContentHash,
		AuditLogID:  auditID,
	}, nil
}
