package spec

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration. Values are kept in sync with
// the Status constants in document.go.
const (
	StateDraft  = "draft"
	StateLocked = "locked"
)

const EventApprove = "approve"

func init() {
	if StateDraft != string(StatusDraft) || StateLocked != string(StatusLocked) {
		panic("FSM state constants do not match Status values")
	}
}

type approvalContext struct {
	SpecID string
}

// ApprovalMachine enforces the one-way draft -> locked transition. There
// is no path out of locked.
type ApprovalMachine struct {
	interpreter *statekit.Interpreter[approvalContext]
}

// NewApprovalMachine builds the status machine seeded with the
// document's current status.
func NewApprovalMachine(initial Status, specID string) (*ApprovalMachine, error) {
	builder := statekit.NewMachine[approvalContext]("spec-approval").
		WithInitial(statekit.StateID(initial)).
		WithContext(approvalContext{SpecID: specID})

	builder.State(StateDraft).
		On(EventApprove).Target(StateLocked).
		Done()

	// Terminal: locked documents accept no events.
	builder.State(StateLocked).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build approval machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &ApprovalMachine{interpreter: interpreter}, nil
}

// Approve fires the approve event. It fails when the document is already
// locked, which callers surface as ErrSpecLocked.
func (m *ApprovalMachine) Approve() error {
	before := m.Current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(EventApprove)})
	if m.Current() == before {
		return ErrSpecLocked
	}
	return nil
}

// Current returns the machine's state as a Status value.
func (m *ApprovalMachine) Current() Status {
	return Status(m.interpreter.State().Value)
}
