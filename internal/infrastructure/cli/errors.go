package cli

import (
	"errors"
	"fmt"

	"github.com/specvet/specvet/pkg/domain/spec"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var valErr *spec.ValidationError
	if errors.As(err, &valErr) {
		return NewCLIError(
			valErr.Error(),
			"Fix the spec input and retry; validation failures are never patched silently",
			err,
		)
	}

	switch {
	case errors.Is(err, spec.ErrSpecNotFound):
		return NewCLIError("spec not found", "Run 'specvet compile' first, or check the id with 'specvet audit timeline'", err)
	case errors.Is(err, spec.ErrSpecLocked):
		return NewCLIError("spec is already locked", "Locked specs are write-once; compile a new version instead", err)
	}

	return err
}
