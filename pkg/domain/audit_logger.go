package domain

// AuditLogger records auditable actions. Services depend on this
// interface, never on a concrete sink, so checks stay unit-testable
// without a live store. Returns the recorded event id.
type AuditLogger interface {
	Log(action string, actor string, metadata map[string]interface{}) (string, error)
}
