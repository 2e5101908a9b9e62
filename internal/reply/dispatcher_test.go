package reply

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SevaSansthan/wa-responder/internal/classify"
	"github.com/SevaSansthan/wa-responder/internal/llm"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Generate(ctx context.Context, messages []llm.Message, cfg llm.ModelConfig) (string, llm.Usage, error) {
	s.calls++
	return s.reply, llm.Usage{}, s.err
}

func (s *stubProvider) GenerateVision(ctx context.Context, instruction string, image []byte, mimeType string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubProvider) Name() string { return "stub" }

type stubFAQ struct {
	answer string
	calls  int
	lastQ  string
}

func (s *stubFAQ) Answer(ctx context.Context, query string) string {
	s.calls++
	s.lastQ = query
	return s.answer
}

func result(classification string) classify.Result {
	return classify.Result{Classification: classification, InterestedToDonate: "No"}
}

func TestRouteGreetingFallsBackWhenLLMFails(t *testing.T) {
	p := &stubProvider{err: errors.New("model unavailable")}
	d := NewDispatcher(NewGenerators(p), &stubFAQ{answer: "faq"})

	got := d.Route(context.Background(), result("General|Greeting"), Context{
		Message:  "Jai Shree Ram",
		UserName: "Ramesh",
	})
	want := GreetingFallback("Ramesh")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRouteReceiptFallsBackWhenLLMFails(t *testing.T) {
	p := &stubProvider{err: errors.New("model unavailable")}
	d := NewDispatcher(NewGenerators(p), &stubFAQ{answer: "faq"})

	got := d.Route(context.Background(), result("Donation Related Enquiries|Receipts Related"), Context{
		Message:  "mujhe 5000 ki receipt chahiye",
		UserName: "Sunita",
	})
	want := ReceiptFallback("Sunita")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !strings.Contains(got, "Shree Sansthan") {
		t.Errorf("receipt reply %q is missing the organization name", got)
	}
}

func TestRouteSpamIsCanned(t *testing.T) {
	p := &stubProvider{reply: "should never be used"}
	faq := &stubFAQ{answer: "faq"}
	d := NewDispatcher(NewGenerators(p), faq)

	got := d.Route(context.Background(), result("Spam|Spammy Message"), Context{Message: "win a free iphone"})
	if got != SpamThanksReply {
		t.Errorf("got %q, want %q", got, SpamThanksReply)
	}
	if p.calls != 0 {
		t.Errorf("spam routing made %d LLM calls, want 0", p.calls)
	}
	if faq.calls != 0 {
		t.Errorf("spam routing made %d FAQ calls, want 0", faq.calls)
	}
}

func TestRouteGeneratorTable(t *testing.T) {
	tests := []struct {
		classification string
		wantReply      string
	}{
		{"General|Greeting", GreetingFallback("Bhakt")},
		{"General|Follow-up", FollowUpFallback("Bhakt")},
		{"General|Ok", OkFallback("Bhakt")},
		{"General|Thanks", ThanksFallback("Bhakt")},
		{"Donation Related Enquiries|Receipts Related", ReceiptFallback("Bhakt")},
		{"Donation Related Enquiries|Amount Confirmation", AmountConfirmationFallback("Bhakt")},
		{"Donation Related Enquiries|Announce Related", DonationInfoFallback("Bhakt")},
		{"Donation Related Enquiries|Post-Donation Related", CondolenceFallback("Bhakt")},
	}

	p := &stubProvider{err: errors.New("down")}
	d := NewDispatcher(NewGenerators(p), &stubFAQ{answer: "faq"})

	for _, tt := range tests {
		got := d.Route(context.Background(), result(tt.classification), Context{Message: "kuch bhi"})
		if got != tt.wantReply {
			t.Errorf("%s: got %q, want %q", tt.classification, got, tt.wantReply)
		}
	}
}

func TestRouteFAQArms(t *testing.T) {
	classifications := []string{
		"General|Emoji",
		"General|Unknown",
		"General Information Enquiries|About Sansthan",
		"Medical / Treatment Enquiries|Treatment Request",
		"Community Outreach Enquiries|Volunteering",
		"Fundraising Campaign Enquiries|Campaign Details",
		"Beneficiary Support Enquiries|Aid Status",
		"Ticket Related Enquiry|Ticket Status",
		"Spam|Unknown",
		"Some Future Category|Whatever",
	}

	p := &stubProvider{reply: "should never be used"}
	for _, cls := range classifications {
		faq := &stubFAQ{answer: "FAQ answer here"}
		d := NewDispatcher(NewGenerators(p), faq)
		got := d.Route(context.Background(), result(cls), Context{Message: "katha kab hai?"})
		if got != "FAQ answer here" {
			t.Errorf("%s: got %q, want the FAQ answer", cls, got)
		}
		if faq.calls != 1 {
			t.Errorf("%s: FAQ called %d times, want 1", cls, faq.calls)
		}
		if faq.lastQ != "katha kab hai?" {
			t.Errorf("%s: FAQ got query %q", cls, faq.lastQ)
		}
	}
}

func TestRouteDonationDefaultArmIntent(t *testing.T) {
	p := &stubProvider{err: errors.New("down")}

	t.Run("classifier flag set", func(t *testing.T) {
		faq := &stubFAQ{answer: "faq"}
		d := NewDispatcher(NewGenerators(p), faq)
		r := result("Donation Related Enquiries|Donation Payment Information")
		r.InterestedToDonate = "Yes"
		got := d.Route(context.Background(), r, Context{Message: "details please"})
		if got != DonationInfoFallback("Bhakt") {
			t.Errorf("got %q, want donation info", got)
		}
		if faq.calls != 0 {
			t.Error("FAQ should not be consulted when donate intent is set")
		}
	})

	t.Run("keyword match without flag", func(t *testing.T) {
		faq := &stubFAQ{answer: "faq"}
		d := NewDispatcher(NewGenerators(p), faq)
		got := d.Route(context.Background(), result("Donation Related Enquiries|Unknown"),
			Context{Message: "mujhe daan karna hai"})
		if got != DonationInfoFallback("Bhakt") {
			t.Errorf("got %q, want donation info", got)
		}
		if faq.calls != 0 {
			t.Error("FAQ should not be consulted on a donation keyword match")
		}
	})

	t.Run("no intent goes to FAQ", func(t *testing.T) {
		faq := &stubFAQ{answer: "faq"}
		d := NewDispatcher(NewGenerators(p), faq)
		got := d.Route(context.Background(), result("Donation Related Enquiries|Unknown"),
			Context{Message: "aapka office kahan hai"})
		if got != "faq" {
			t.Errorf("got %q, want the FAQ answer", got)
		}
	})
}

func TestRouteNeverReturnsEmpty(t *testing.T) {
	p := &stubProvider{err: errors.New("down")}
	d := NewDispatcher(NewGenerators(p), &stubFAQ{answer: ""})

	got := d.Route(context.Background(), result("General|Unknown"), Context{Message: "???"})
	if got != FinalFallback {
		t.Errorf("got %q, want the final fallback", got)
	}
}
