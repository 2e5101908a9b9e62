package llm

import (
	"context"
)

// Message is a minimal chat message format for the provider
type Message struct {
	Role    string // system | user | assistant
	Content string
}

// Usage captures token accounting if the upstream API reports it
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ModelConfig contains per-request model settings
type ModelConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// Provider abstracts the LLM call. Implementations wrap Eino Gemini models
// or an OpenAI-compatible endpoint; callers never depend on which.
type Provider interface {
	// Generate runs one chat completion. No streaming, no multi-turn state.
	Generate(ctx context.Context, messages []Message, cfg ModelConfig) (text string, usage Usage, err error)
	// GenerateVision describes the given image bytes following instruction.
	GenerateVision(ctx context.Context, instruction string, image []byte, mimeType string) (string, error)
	// Name reports the provider kind for health and log output.
	Name() string
}
