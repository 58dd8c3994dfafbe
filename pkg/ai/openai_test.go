package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specvet/specvet/pkg/domain/ai"
)

func TestOpenAIProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v, want system then user", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": `{"approved": true}`}},
			},
			"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 5},
		})
	}))
	defer server.Close()

	p := NewOpenAIProviderWithClient("gpt-4o-mini", "test-key", server.URL, server.Client())

	resp, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt: "review this spec",
		System: "respond with JSON",
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Text != `{"approved": true}` {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 5 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestOpenAIProvider_RequiresAPIKey(t *testing.T) {
	p := NewOpenAIProvider("gpt-4o-mini", "")
	if _, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"}); err == nil {
		t.Error("Complete() must fail without an API key")
	}
}

func TestOpenAIProvider_SurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewOpenAIProviderWithClient("gpt-4o-mini", "test-key", server.URL, server.Client())
	if _, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"}); err == nil {
		t.Error("Complete() must surface non-200 responses")
	}
}

func TestOllamaProvider_RejectsUnsafeModelNames(t *testing.T) {
	p := NewOllamaProvider("model; rm -rf /")
	if _, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"}); err == nil {
		t.Error("Complete() must reject model names outside the safe set")
	}
}
