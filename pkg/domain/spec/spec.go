// Package spec defines the Executable Specification artifact and its
// compiled, hashed document form.
package spec

import "strings"

// Severity classifies how binding a constraint is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Narrative is the free-text framing of a spec: what and why.
type Narrative struct {
	Title     string `json:"title" yaml:"title"`
	Objective string `json:"objective" yaml:"objective"`
	Rationale string `json:"rationale" yaml:"rationale"`
}

// ContextPointer asserts traceability from the spec back to raw input
// (a Slack thread, a ticket, a call transcript).
type ContextPointer struct {
	Source  string `json:"source" yaml:"source"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Cited reports whether the pointer actually traces back to something.
func (p ContextPointer) Cited() bool {
	return strings.TrimSpace(p.Source) != "" && strings.TrimSpace(p.Snippet) != ""
}

// Constraint is a stated rule the implementation must respect.
type Constraint struct {
	Rule      string   `json:"rule" yaml:"rule"`
	Severity  Severity `json:"severity" yaml:"severity"`
	Rationale string   `json:"rationale" yaml:"rationale"`
}

// Scenario is a Given/When/Then acceptance criterion.
type Scenario struct {
	Name  string   `json:"scenario" yaml:"scenario"`
	Given []string `json:"given" yaml:"given"`
	When  []string `json:"when" yaml:"when"`
	Then  []string `json:"then" yaml:"then"`
}

// WellFormed reports whether the scenario is named and carries all three
// Given/When/Then parts.
func (s Scenario) WellFormed() bool {
	return strings.TrimSpace(s.Name) != "" && len(s.Given) > 0 && len(s.When) > 0 && len(s.Then) > 0
}

// ExecutableSpec is the four-layer artifact handed to quality checks.
// None of the layers is required to be non-empty: a partial spec still
// scores, it just scores badly.
type ExecutableSpec struct {
	Narrative       Narrative        `json:"narrative" yaml:"narrative"`
	ContextPointers []ContextPointer `json:"context_pointers" yaml:"context_pointers"`
	Constraints     []Constraint     `json:"constraints" yaml:"constraints"`
	Verification    []Scenario       `json:"verification" yaml:"verification"`
}

// Text flattens every free-text field into one scannable blob.
// Dictionary-based detectors run over this.
func (s *ExecutableSpec) Text() string {
	var b strings.Builder
	b.WriteString(s.Narrative.Title)
	b.WriteString("\n")
	b.WriteString(s.Narrative.Objective)
	b.WriteString("\n")
	b.WriteString(s.Narrative.Rationale)
	for _, p := range s.ContextPointers {
		b.WriteString("\n")
		b.WriteString(p.Snippet)
	}
	for _, c := range s.Constraints {
		b.WriteString("\n")
		b.WriteString(c.Rule)
		b.WriteString("\n")
		b.WriteString(c.Rationale)
	}
	for _, v := range s.Verification {
		b.WriteString("\n")
		b.WriteString(v.Name)
		for _, line := range v.Given {
			b.WriteString("\n")
			b.WriteString(line)
		}
		for _, line := range v.When {
			b.WriteString("\n")
			b.WriteString(line)
		}
		for _, line := range v.Then {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return b.String()
}
