package reply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

const generateTimeout = 20 * time.Second

// Context carries what every generator prompt needs about the request.
type Context struct {
	Message  string
	UserName string
	Language string
	Script   string
}

func (c Context) name() string {
	if strings.TrimSpace(c.UserName) == "" {
		return "Bhakt"
	}
	return c.UserName
}

func (c Context) language() string {
	if c.Language == "" {
		return "Hindi"
	}
	return c.Language
}

func (c Context) script() string {
	if c.Script == "" {
		return "Latin"
	}
	return c.Script
}

// genSpec describes one reply bucket.
type genSpec struct {
	name        string
	maxLen      int
	instruction string   // bucket-specific task appended to the persona rules
	required    []string // substrings appended if the model leaves them out
	fallback    func(name string) string
}

// Generators produces the templated replies. Every method returns a
// non-empty string and never an error; failures collapse to the bucket's
// fallback.
type Generators struct {
	provider llm.Provider
	cfg      llm.ModelConfig
}

func NewGenerators(provider llm.Provider) *Generators {
	return &Generators{
		provider: provider,
		cfg: llm.ModelConfig{
			Temperature: 0.6,
			MaxTokens:   256,
		},
	}
}

func (g *Generators) Greeting(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:        "greeting",
		maxLen:      300,
		instruction: "The donor sent a greeting. Greet them back devotionally, introduce yourself as Priya, and ask how you can help.",
		fallback:    GreetingFallback,
	})
}

func (g *Generators) FollowUp(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:        "follow_up",
		maxLen:      300,
		instruction: "The donor is following up on an earlier conversation. Acknowledge their patience and assure them the team will update them soon.",
		fallback:    FollowUpFallback,
	})
}

func (g *Generators) Acknowledge(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:        "acknowledge",
		maxLen:      300,
		instruction: "The donor sent a short acknowledgement like 'ok'. Reply with a very brief, warm acknowledgement.",
		fallback:    OkFallback,
	})
}

func (g *Generators) Thanks(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:        "thanks",
		maxLen:      300,
		instruction: "The donor thanked us. Thank them back warmly for their affection and support.",
		fallback:    ThanksFallback,
	})
}

func (g *Generators) Receipt(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:   "receipt",
		maxLen: 500,
		instruction: "The donor is asking about a donation receipt. If the message mentions an amount, date, transaction id or donor name, extract those values and weave them naturally into the reply; if a value is not discernible, omit that clause entirely rather than using a placeholder. Assure them the receipt will be shared soon.",
		required: []string{orgName},
		fallback: ReceiptFallback,
	})
}

func (g *Generators) AmountConfirmation(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:   "amount_confirmation",
		maxLen: 500,
		instruction: "The donor wants confirmation that their donation was received. If the message mentions an amount, date, transaction id or payment app, extract those values and mention them in the confirmation; omit any value that is not discernible rather than guessing. Tell them the team is verifying and will confirm shortly.",
		required: []string{orgName},
		fallback: AmountConfirmationFallback,
	})
}

func (g *Generators) DonationInfo(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:        "donation_info",
		maxLen:      500,
		instruction: "The donor wants to donate. Thank them for the intent and ask for their preferred donation method (UPI or bank transfer), offering to share the details.",
		required:    []string{orgName},
		fallback:    DonationInfoFallback,
	})
}

func (g *Generators) Condolence(ctx context.Context, c Context) string {
	return g.generate(ctx, c, genSpec{
		name:        "condolence",
		maxLen:      400,
		instruction: "The donor has completed a donation. Thank them with heartfelt gratitude and bless their seva bhavna.",
		fallback:    CondolenceFallback,
	})
}

// generate runs the common algorithm: persona prompt, one LLM call,
// whitespace normalization, then validation against the ceiling.
func (g *Generators) generate(ctx context.Context, c Context, spec genSpec) string {
	fallback := spec.fallback(c.name())

	if g.provider == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := fmt.Sprintf(personaRules, orgName, c.language(), c.script(), c.name(), spec.maxLen) +
		"\n\nTask: " + spec.instruction +
		"\n\nDonor's message:\n" + c.Message +
		"\n\nReply with the message text only."

	raw, _, err := g.provider.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}}, g.cfg)
	if err != nil {
		utils.Zlog.Warn("Reply generation failed, using fallback",
			zap.String("generator", spec.name),
			zap.Error(err))
		return fallback
	}

	text := strings.TrimSpace(strings.ReplaceAll(raw, "\\n", "\n"))
	if text == "" {
		utils.Zlog.Debug("Generated reply empty, using fallback",
			zap.String("generator", spec.name))
		return fallback
	}

	for _, req := range spec.required {
		if !strings.Contains(text, req) {
			text = text + " - " + req
		}
	}

	// Ceiling applies to the final text, required appends included.
	if len(text) > spec.maxLen {
		utils.Zlog.Debug("Generated reply rejected, using fallback",
			zap.String("generator", spec.name),
			zap.Int("length", len(text)))
		return fallback
	}

	return text
}
