package reply

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateUsesModelReply(t *testing.T) {
	p := &stubProvider{reply: "Jai Shree Ram Ramesh ji 🙏 Kaise sahayta karu?"}
	g := NewGenerators(p)

	got := g.Greeting(context.Background(), Context{Message: "namaste", UserName: "Ramesh"})
	if got != p.reply {
		t.Errorf("got %q, want the model reply", got)
	}
	if p.calls != 1 {
		t.Errorf("got %d LLM calls, want 1", p.calls)
	}
}

func TestGenerateNilProvider(t *testing.T) {
	g := NewGenerators(nil)
	got := g.Thanks(context.Background(), Context{Message: "dhanyavaad"})
	if got != ThanksFallback("Bhakt") {
		t.Errorf("got %q, want the thanks fallback", got)
	}
}

func TestGenerateRejectsOversizedReply(t *testing.T) {
	p := &stubProvider{reply: strings.Repeat("a", 301)}
	g := NewGenerators(p)

	got := g.Greeting(context.Background(), Context{UserName: "Sunita"})
	if got != GreetingFallback("Sunita") {
		t.Errorf("oversized reply not rejected, got %q", got)
	}
}

func TestGenerateRejectsEmptyReply(t *testing.T) {
	p := &stubProvider{reply: "   \n  "}
	g := NewGenerators(p)

	got := g.FollowUp(context.Background(), Context{})
	if got != FollowUpFallback("Bhakt") {
		t.Errorf("empty reply not rejected, got %q", got)
	}
}

func TestGenerateNormalizesEscapedNewlines(t *testing.T) {
	p := &stubProvider{reply: `Pehli line\nDusri line`}
	g := NewGenerators(p)

	got := g.Acknowledge(context.Background(), Context{})
	if got != "Pehli line\nDusri line" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateAppendsRequiredOrgName(t *testing.T) {
	p := &stubProvider{reply: "Aapki receipt jald bhej di jayegi 🙏"}
	g := NewGenerators(p)

	got := g.Receipt(context.Background(), Context{Message: "receipt?"})
	if !strings.Contains(got, orgName) {
		t.Errorf("reply %q is missing %q", got, orgName)
	}
	if !strings.HasPrefix(got, p.reply) {
		t.Errorf("reply %q should keep the model text", got)
	}
}

func TestGenerateCeilingHoldsAfterRequiredAppend(t *testing.T) {
	// 495 chars without the org name: appending " - Shree Sansthan" would
	// push the reply past the 500-char ceiling, so the fallback wins.
	p := &stubProvider{reply: strings.Repeat("a", 495)}
	g := NewGenerators(p)

	got := g.Receipt(context.Background(), Context{UserName: "Sunita"})
	if got != ReceiptFallback("Sunita") {
		t.Fatalf("got %d chars, want the receipt fallback", len(got))
	}
	if len(got) > 500 {
		t.Errorf("receipt reply is %d chars, exceeds the 500-char ceiling", len(got))
	}
}

func TestGenerateErrorFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("rate limited")}
	g := NewGenerators(p)

	tests := []struct {
		name string
		call func() string
		want string
	}{
		{"greeting", func() string { return g.Greeting(context.Background(), Context{UserName: "A"}) }, GreetingFallback("A")},
		{"follow_up", func() string { return g.FollowUp(context.Background(), Context{UserName: "A"}) }, FollowUpFallback("A")},
		{"acknowledge", func() string { return g.Acknowledge(context.Background(), Context{UserName: "A"}) }, OkFallback("A")},
		{"thanks", func() string { return g.Thanks(context.Background(), Context{UserName: "A"}) }, ThanksFallback("A")},
		{"receipt", func() string { return g.Receipt(context.Background(), Context{UserName: "A"}) }, ReceiptFallback("A")},
		{"amount", func() string { return g.AmountConfirmation(context.Background(), Context{UserName: "A"}) }, AmountConfirmationFallback("A")},
		{"donation_info", func() string { return g.DonationInfo(context.Background(), Context{UserName: "A"}) }, DonationInfoFallback("A")},
		{"condolence", func() string { return g.Condolence(context.Background(), Context{UserName: "A"}) }, CondolenceFallback("A")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.call()
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if strings.TrimSpace(got) == "" {
				t.Error("fallback must not be empty")
			}
		})
	}
}
