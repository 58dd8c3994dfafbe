package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/specvet/specvet/pkg/domain/spec"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"not found", spec.ErrSpecNotFound, "specvet compile"},
		{"locked", spec.ErrSpecLocked, "write-once"},
		{
			"validation",
			&spec.ValidationError{Field: "feature", Reason: "feature name is required"},
			"Fix the spec input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)

			var cliErr *CLIError
			if !errors.As(mapped, &cliErr) {
				t.Fatalf("MapError() = %T, want *CLIError", mapped)
			}
			if !strings.Contains(cliErr.Hint, tt.wantHint) {
				t.Errorf("Hint = %q, want substring %q", cliErr.Hint, tt.wantHint)
			}
			if cliErr.ExitCode != 1 {
				t.Errorf("ExitCode = %d, want 1", cliErr.ExitCode)
			}
			if !errors.Is(mapped, tt.err) {
				t.Error("mapped error must unwrap to the original")
			}
		})
	}
}

func TestMapError_PassThrough(t *testing.T) {
	if MapError(nil) != nil {
		t.Error("MapError(nil) must stay nil")
	}

	plain := errors.New("disk on fire")
	if MapError(plain) != plain {
		t.Error("unmapped errors must be returned unchanged")
	}
}
