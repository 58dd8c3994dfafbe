package ai

import (
	"context"

	"github.com/specvet/specvet/pkg/domain/ai"
)

// MockProvider returns canned responses. Used by tests and by the
// "mock" provider setting for offline development.
type MockProvider struct {
	Model    string
	Response string
	Err      error
}

func (p *MockProvider) ID() string {
	return "mock:" + p.Model
}

func (p *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	text := p.Response
	if text == "" {
		text = "{}"
	}
	return &ai.CompletionResponse{Text: text, Model: p.Model}, nil
}
