package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Generate(ctx context.Context, messages []Message, cfg ModelConfig) (string, Usage, error) {
	f.calls++
	return f.reply, Usage{}, f.err
}

func (f *fakeProvider) GenerateVision(ctx context.Context, instruction string, image []byte, mimeType string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain object",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "fenced object",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "object wrapped in prose",
			raw:  "Here is the result:\n{\"a\": 1}\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "unquoted boolean placeholder repaired",
			raw:  `{"Interested_To_Donate": Yes, "confidence": "HIGH"}`,
			want: `{"Interested_To_Donate": "Yes", "confidence": "HIGH"}`,
		},
		{
			name:    "empty reply",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "no object at all",
			raw:     "sorry, I cannot help with that",
			wantErr: true,
		},
		{
			name:    "irreparable JSON",
			raw:     `{"a": undefined_symbol}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("result is not valid JSON: %q", got)
			}
		})
	}
}

func TestCallForJSON(t *testing.T) {
	type out struct {
		Classification string `json:"classification"`
	}

	t.Run("decodes fenced reply", func(t *testing.T) {
		p := &fakeProvider{reply: "```json\n{\"classification\": \"General|Greeting\"}\n```"}
		var got out
		if err := CallForJSON(context.Background(), p, "prompt", ModelConfig{}, &got, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Classification != "General|Greeting" {
			t.Errorf("got %q", got.Classification)
		}
	})

	t.Run("provider error propagates", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("boom")}
		var got out
		if err := CallForJSON(context.Background(), p, "prompt", ModelConfig{}, &got, nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("nil provider errors", func(t *testing.T) {
		var got out
		err := CallForJSON(context.Background(), nil, "prompt", ModelConfig{}, &got, nil)
		if err == nil || !strings.Contains(err.Error(), "no LLM provider") {
			t.Fatalf("expected provider error, got %v", err)
		}
	})

	t.Run("validate hook rejects", func(t *testing.T) {
		p := &fakeProvider{reply: `{"classification": ""}`}
		var got out
		err := CallForJSON(context.Background(), p, "prompt", ModelConfig{}, &got, func() error {
			if got.Classification == "" {
				return errors.New("missing classification")
			}
			return nil
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})
}
