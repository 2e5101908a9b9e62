package classify

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// Result is the classification outcome. Every field is always populated:
// on any failure the fixed default is substituted so downstream code never
// sees a partial value.
type Result struct {
	Classification     string `json:"classification"`
	Confidence         string `json:"confidence"`
	Reasoning          string `json:"reasoning"`
	InterestedToDonate string `json:"Interested_To_Donate"`
	QuestionLanguage   string `json:"Question_Language"`
	QuestionScript     string `json:"Question_Script"`
}

// Label parses the wire-form classification pair.
func (r Result) Label() Label {
	return ParseLabel(r.Classification)
}

// WantsToDonate reports the classifier's own donate-intent flag.
func (r Result) WantsToDonate() bool {
	return strings.EqualFold(strings.TrimSpace(r.InterestedToDonate), "yes")
}

const classifyTimeout = 20 * time.Second

// DefaultResult is what every failure path collapses to.
func DefaultResult(reasoning string) Result {
	return Result{
		Classification:     string(CategoryGeneral) + "|" + string(SubUnknown),
		Confidence:         "LOW",
		Reasoning:          reasoning,
		InterestedToDonate: "No",
		QuestionLanguage:   "English",
		QuestionScript:     "Latin",
	}
}

// Classifier delegates category choice entirely to the LLM; there is no
// local disambiguation.
type Classifier struct {
	provider llm.Provider
	cfg      llm.ModelConfig
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{
		provider: provider,
		cfg: llm.ModelConfig{
			Temperature: 0.2,
			MaxTokens:   512,
		},
	}
}

// Classify returns a well-formed Result for any input. It never returns an
// error: network failures, timeouts and malformed JSON all collapse into the
// low-confidence default.
func (c *Classifier) Classify(ctx context.Context, message string, isImage bool) Result {
	if strings.TrimSpace(message) == "" {
		return DefaultResult("Empty message, no classification needed")
	}
	if c.provider == nil {
		return DefaultResult("LLM client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	prompt := buildClassificationPrompt(message, isImage)

	var result Result
	err := llm.CallForJSON(ctx, c.provider, prompt, c.cfg, &result, nil)
	if err != nil {
		utils.Zlog.Warn("Classification failed, using default",
			zap.Bool("is_image", isImage),
			zap.Error(err))
		return DefaultResult("Classification error: " + err.Error())
	}

	// Backfill anything the model left blank so the contract holds.
	if strings.TrimSpace(result.Classification) == "" {
		result.Classification = string(CategoryGeneral) + "|" + string(SubUnknown)
	}
	if result.Confidence == "" {
		result.Confidence = "LOW"
	}
	if result.Reasoning == "" {
		result.Reasoning = "No reasoning provided"
	}
	if result.InterestedToDonate == "" {
		result.InterestedToDonate = "No"
	}
	if result.QuestionLanguage == "" {
		result.QuestionLanguage = "English"
	}
	if result.QuestionScript == "" {
		result.QuestionScript = "Latin"
	}

	return result
}
