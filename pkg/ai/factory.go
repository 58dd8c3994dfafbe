package ai

import (
	"fmt"
	"os"

	"github.com/specvet/specvet/pkg/domain/ai"
)

// NewProvider constructs a raw provider by name. API keys come from the
// conventional environment variables.
func NewProvider(providerName, modelName string) (ai.Provider, error) {
	switch providerName {
	case "ollama", "":
		return NewOllamaProvider(modelName), nil
	case "mock":
		return &MockProvider{Model: modelName}, nil
	case "openai":
		return NewOpenAIProvider(modelName, os.Getenv("OPENAI_API_KEY")), nil
	case "anthropic":
		return NewAnthropicProvider(modelName, os.Getenv("ANTHROPIC_API_KEY")), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", providerName)
	}
}

// GetDefaultProvider resolves provider and model from environment
// overrides before falling back to the given defaults.
func GetDefaultProvider(providerName, modelName string) (ai.Provider, error) {
	if env := os.Getenv("SPECVET_AI_PROVIDER"); env != "" {
		providerName = env
	}
	if env := os.Getenv("SPECVET_AI_MODEL"); env != "" {
		modelName = env
	}
	return NewProvider(providerName, modelName)
}
