package faq

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// UnavailableFallback is returned whenever the answering call fails.
const UnavailableFallback = "Sorry, our FAQ service is temporarily unavailable. Please try again later. 🙏"

const (
	selectTimeout = 15 * time.Second
	answerTimeout = 20 * time.Second

	// Answers longer than this are discarded in favour of the fallback.
	answerMaxLen = 500
)

// admissionPhrases are stripped from answers: the model is told not to admit
// a content mismatch, but it occasionally does anyway.
var admissionPhrases = []string{
	"the provided content does not",
	"the content does not match",
	"i could not find this in the provided content",
	"based on the provided content, i cannot",
}

// Answerer implements the two-step FAQ reply: pick the best entry by number,
// then phrase an answer from that entry's content.
type Answerer struct {
	store    *Store
	provider llm.Provider
	cfg      llm.ModelConfig
}

func NewAnswerer(store *Store, provider llm.Provider) *Answerer {
	return &Answerer{
		store:    store,
		provider: provider,
		cfg: llm.ModelConfig{
			Temperature: 0.4,
			MaxTokens:   512,
		},
	}
}

// SelectBestEntry asks the LLM for a single entry number from the keyword
// index. Any parse failure or out-of-range value defaults to entry 1.
func (a *Answerer) SelectBestEntry(ctx context.Context, query string) int {
	const defaultEntryID = 1

	if a.provider == nil || a.store.Len() == 0 {
		return defaultEntryID
	}

	candidates := rankEntries(utils.ExtractKeywords(query, 6), a.store.All())

	ctx, cancel := context.WithTimeout(ctx, selectTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`Below is a numbered list of FAQ topics. Reply with ONLY the single number of the topic that best matches the question. No other text.

Topics:
%s
Question: %s`, renderKeywordList(candidates), query)

	raw, _, err := a.provider.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}}, a.cfg)
	if err != nil {
		utils.Zlog.Warn("FAQ selection call failed, defaulting to entry 1", zap.Error(err))
		return defaultEntryID
	}

	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !a.store.Has(id) {
		utils.Zlog.Debug("FAQ selection unusable, defaulting to entry 1",
			zap.String("raw", raw))
		return defaultEntryID
	}

	return id
}

// Answer phrases a short reply to query from the selected entry's content.
// It never returns an empty string.
func (a *Answerer) Answer(ctx context.Context, query string) string {
	entry := a.store.Get(a.SelectBestEntry(ctx, query))

	if a.provider == nil {
		return UnavailableFallback
	}

	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are Priya, the warm and polite WhatsApp assistant of a charitable Sansthan.
Answer the donor's question using ONLY the reference content below.
Keep the answer short and structured, in the same language as the question.
Never say that the content does not match or that you could not find the answer; give the closest helpful information instead.

Reference content:
%s

Question: %s`, entry.Content, query)

	raw, _, err := a.provider.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}}, a.cfg)
	if err != nil {
		utils.Zlog.Warn("FAQ answer call failed, using fallback", zap.Error(err))
		return UnavailableFallback
	}

	answer := strings.TrimSpace(strings.ReplaceAll(raw, "\\n", "\n"))
	if answer == "" || len(answer) > answerMaxLen {
		return UnavailableFallback
	}

	answer = stripAdmissions(answer)
	if answer == "" {
		return UnavailableFallback
	}

	return answer
}

// stripAdmissions drops sentences where the model admits a content mismatch.
func stripAdmissions(answer string) string {
	lower := strings.ToLower(answer)
	for _, phrase := range admissionPhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		// Remove the whole sentence containing the admission.
		start := strings.LastIndexAny(lower[:idx], ".!?\n") + 1
		end := strings.IndexAny(lower[idx:], ".!?\n")
		if end < 0 {
			end = len(answer)
		} else {
			end = idx + end + 1
		}
		answer = strings.TrimSpace(answer[:start] + answer[end:])
		lower = strings.ToLower(answer)
	}
	return answer
}
