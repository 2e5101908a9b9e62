package reply

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/classify"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// FAQAnswerer is the default arm of the dispatch table.
type FAQAnswerer interface {
	Answer(ctx context.Context, query string) string
}

// Dispatcher maps a classification label to a reply generator. The match is
// exhaustive over the closed category set with a single default arm; the
// compiler sees every category constant here.
type Dispatcher struct {
	gens *Generators
	faq  FAQAnswerer
}

func NewDispatcher(gens *Generators, faq FAQAnswerer) *Dispatcher {
	return &Dispatcher{gens: gens, faq: faq}
}

// Route picks and runs the generator for the classification. The returned
// reply is never empty.
func (d *Dispatcher) Route(ctx context.Context, result classify.Result, rc Context) string {
	label := result.Label()

	utils.Zlog.Debug("Dispatching reply",
		zap.String("category", string(label.Category)),
		zap.String("subcategory", string(label.Subcategory)))

	var text string

	switch label.Category {
	case classify.CategoryGeneral:
		switch label.Subcategory {
		case classify.SubGreeting:
			text = d.gens.Greeting(ctx, rc)
		case classify.SubFollowUp:
			text = d.gens.FollowUp(ctx, rc)
		case classify.SubOk:
			text = d.gens.Acknowledge(ctx, rc)
		case classify.SubThanks:
			text = d.gens.Thanks(ctx, rc)
		default:
			text = d.faq.Answer(ctx, rc.Message)
		}

	case classify.CategoryDonation:
		switch label.Subcategory {
		case classify.SubReceipts:
			text = d.gens.Receipt(ctx, rc)
		case classify.SubAmount:
			text = d.gens.AmountConfirmation(ctx, rc)
		case classify.SubAnnounce:
			text = d.gens.DonationInfo(ctx, rc)
		case classify.SubPostDon:
			text = d.gens.Condolence(ctx, rc)
		default:
			// Donate intent comes from the classifier flag OR a local
			// keyword match on the raw text.
			if result.WantsToDonate() || utils.ContainsDonationIntent(rc.Message) {
				text = d.gens.DonationInfo(ctx, rc)
			} else {
				text = d.faq.Answer(ctx, rc.Message)
			}
		}

	case classify.CategorySpam:
		if label.Subcategory == classify.SubSpammy {
			text = SpamThanksReply
		} else {
			text = d.faq.Answer(ctx, rc.Message)
		}

	case classify.CategoryGeneralInfo,
		classify.CategoryMedical,
		classify.CategoryCommunity,
		classify.CategoryFundraising,
		classify.CategoryBeneficiary,
		classify.CategoryTicket:
		text = d.faq.Answer(ctx, rc.Message)

	default:
		text = d.faq.Answer(ctx, rc.Message)
	}

	// Last line of defense against an empty reply reaching the caller.
	if strings.TrimSpace(text) == "" {
		utils.Zlog.Warn("All generators produced empty output, using final fallback",
			zap.String("classification", result.Classification))
		return FinalFallback
	}

	return text
}
