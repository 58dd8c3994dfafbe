package spec

import "errors"

// Domain errors for spec documents.
var (
	// ErrSpecNotFound indicates no document exists for the given id.
	ErrSpecNotFound = errors.New("spec not found")

	// ErrSpecLocked indicates the document is already locked and cannot
	// be approved or mutated again.
	ErrSpecLocked = errors.New("spec is locked")

	// ErrValidation is the sentinel all ValidationErrors match via errors.Is.
	ErrValidation = errors.New("spec validation failed")
)

// ValidationError reports malformed or missing required input. It is
// fatal to the operation that raised it and is never silently patched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid spec: " + e.Field + ": " + e.Reason
}

// Is allows errors.Is(err, ErrValidation) to work.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
