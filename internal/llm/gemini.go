package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// GeminiProvider wraps multiple Gemini chat models with round-robin key
// rotation. This distributes API requests across keys to avoid rate limits.
type GeminiProvider struct {
	models    []model.ToolCallingChatModel
	modelName string
	keyIndex  uint64 // atomic counter for round-robin selection
}

// NewGeminiProvider creates a provider that rotates between multiple API keys
func NewGeminiProvider(ctx context.Context, apiKeys []string, modelName string, temperature *float32, maxTokens *int) (*GeminiProvider, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}

	models := make([]model.ToolCallingChatModel, len(apiKeys))

	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: key,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client for key %d: %w", i+1, err)
		}

		chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       modelName,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model for key %d: %w", i+1, err)
		}

		models[i] = chatModel
	}

	utils.Zlog.Info("Created Gemini provider with round-robin key rotation",
		zap.Int("key_count", len(apiKeys)),
		zap.String("model", modelName))

	return &GeminiProvider{
		models:    models,
		modelName: modelName,
		keyIndex:  0,
	}, nil
}

// getNextModel returns the next model using round-robin selection
// Thread-safe: uses atomic operations to ensure fair distribution
func (p *GeminiProvider) getNextModel() model.ToolCallingChatModel {
	if len(p.models) == 1 {
		return p.models[0]
	}
	idx := atomic.AddUint64(&p.keyIndex, 1)
	return p.models[idx%uint64(len(p.models))]
}

func (p *GeminiProvider) Name() string { return "gemini" }

// Generate implements Provider
func (p *GeminiProvider) Generate(ctx context.Context, messages []Message, cfg ModelConfig) (string, Usage, error) {
	input := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			input = append(input, schema.SystemMessage(m.Content))
		case "assistant":
			input = append(input, schema.AssistantMessage(m.Content, nil))
		default:
			input = append(input, schema.UserMessage(m.Content))
		}
	}

	resp, err := p.getNextModel().Generate(ctx, input)
	if err != nil {
		return "", Usage{}, fmt.Errorf("gemini generate failed: %w", err)
	}

	var usage Usage
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage = Usage{
			PromptTokens:     resp.ResponseMeta.Usage.PromptTokens,
			CompletionTokens: resp.ResponseMeta.Usage.CompletionTokens,
			TotalTokens:      resp.ResponseMeta.Usage.TotalTokens,
		}
	}

	return resp.Content, usage, nil
}

// GenerateVision implements Provider using a multi-content message carrying
// the image bytes as a base64 data URL.
func (p *GeminiProvider) GenerateVision(ctx context.Context, instruction string, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("image bytes are empty")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	msg := &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{
				Type: schema.ChatMessagePartTypeText,
				Text: instruction,
			},
			{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL:      dataURL,
					MIMEType: mimeType,
				},
			},
		},
	}

	resp, err := p.getNextModel().Generate(ctx, []*schema.Message{msg})
	if err != nil {
		return "", fmt.Errorf("gemini vision generate failed: %w", err)
	}

	return resp.Content, nil
}
