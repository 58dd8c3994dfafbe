// Package ai defines the reasoning backend capability the hybrid checks
// depend on. The backend is assumed to be occasionally unavailable,
// slow, or wrong; callers must degrade gracefully.
package ai

import "context"

// CompletionRequest represents a prompt to the reasoning backend.
type CompletionRequest struct {
	Prompt      string
	System      string
	Temperature float32
	MaxTokens   int
}

// CompletionResponse represents the backend's answer.
type CompletionResponse struct {
	Text  string
	Usage TokenUsage
	Model string
}

// TokenUsage tracks costs.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Provider is the interface for all reasoning backends.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
