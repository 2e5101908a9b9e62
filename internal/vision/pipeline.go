package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	transcribeTimeout = 30 * time.Second
	extractTimeout    = 20 * time.Second
)

const transcriptionInstruction = `Describe this image as text. If it is a payment or donation screenshot, transcribe every visible detail: amount, date, time, transaction or UTR id, payment app, sender and receiver. If it is not a payment screenshot, describe briefly what it shows.`

// Downloader fetches image bytes; satisfied by utils.ImageDownloader.
type Downloader interface {
	Download(ctx context.Context, url string) (*utils.DownloadedImage, error)
}

// Analysis is the outcome of the transcription stage.
type Analysis struct {
	Transcription string `json:"transcription"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

// DonationDetails is the outcome of the extraction stage. The zero value
// means "not a donation screenshot" with no extracted fields.
type DonationDetails struct {
	IsDonationScreenshot string `json:"is_donation_screenshot"`
	Amount               string `json:"amount"`
	TransactionID        string `json:"transaction_id"`
	Date                 string `json:"date"`
	PaymentApp           string `json:"payment_app"`
	Language             string `json:"language"`
	Account              string `json:"account"`
	GeneratedResponse    string `json:"generated_response"`
}

func (d DonationDetails) IsScreenshot() bool {
	return strings.EqualFold(strings.TrimSpace(d.IsDonationScreenshot), "yes")
}

// Pipeline turns an attached image into a transcription and, when the image
// is a payment screenshot, an acknowledgement message.
type Pipeline struct {
	downloader Downloader
	provider   llm.Provider
	cfg        llm.ModelConfig
}

func NewPipeline(downloader Downloader, provider llm.Provider) *Pipeline {
	return &Pipeline{
		downloader: downloader,
		provider:   provider,
		cfg: llm.ModelConfig{
			Temperature: 0.2,
			MaxTokens:   1024,
		},
	}
}

// AnalyzeImage downloads the image and asks the multimodal endpoint for a
// transcription. Failures at either step yield status=error; callers fall
// through to normal text classification.
func (p *Pipeline) AnalyzeImage(ctx context.Context, url string) Analysis {
	if p.provider == nil {
		return Analysis{Status: StatusError, Error: "LLM client not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	img, err := p.downloader.Download(ctx, url)
	if err != nil {
		utils.Zlog.Warn("Image download failed", zap.String("url", url), zap.Error(err))
		return Analysis{Status: StatusError, Error: err.Error()}
	}

	transcription, err := p.provider.GenerateVision(ctx, transcriptionInstruction, img.Content, img.ContentType)
	if err != nil {
		utils.Zlog.Warn("Image transcription failed", zap.Error(err))
		return Analysis{Status: StatusError, Error: err.Error()}
	}

	transcription = strings.TrimSpace(transcription)
	if transcription == "" {
		return Analysis{Status: StatusError, Error: "empty transcription"}
	}

	return Analysis{Transcription: transcription, Status: StatusSuccess}
}

// ExtractDonationDetails decides whether the transcription is a payment
// screenshot and, if so, extracts the payment values and composes an
// acknowledgement. Any failure returns the not-a-donation zero value.
func (p *Pipeline) ExtractDonationDetails(ctx context.Context, transcription, userName string) DonationDetails {
	if p.provider == nil || strings.TrimSpace(transcription) == "" {
		return DonationDetails{IsDonationScreenshot: "No"}
	}
	if userName == "" {
		userName = "Bhakt"
	}

	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`The following text is a transcription of an image a donor sent on WhatsApp.

Transcription:
%s

Decide whether this is a payment/donation screenshot. If it is, extract the payment values and compose a short acknowledgement message for the donor.

Acknowledgement rules:
- If the transcription is in Hindi or Devanagari, write: "जय नारायण %s जी! ₹<amount> के आपके दान के लिए हार्दिक धन्यवाद। आपकी रसीद जल्द ही भेजी जाएगी।"
- Otherwise write: "Jai Narayan %s ji! Heartfelt thanks for your donation of ₹<amount>. Your receipt will be shared soon. 🙏"
- Only mention values actually present in the transcription.

Reply with ONLY a JSON object, no code fences:
{
  "is_donation_screenshot": "Yes" | "No",
  "amount": "<amount or empty>",
  "transaction_id": "<id or empty>",
  "date": "<date or empty>",
  "payment_app": "<app or empty>",
  "language": "<language of the screenshot>",
  "account": "<receiving account or empty>",
  "generated_response": "<acknowledgement, empty if not a donation screenshot>"
}`, transcription, userName, userName)

	var details DonationDetails
	if err := llm.CallForJSON(ctx, p.provider, prompt, p.cfg, &details, nil); err != nil {
		utils.Zlog.Warn("Donation extraction failed", zap.Error(err))
		return DonationDetails{IsDonationScreenshot: "No"}
	}

	if details.IsDonationScreenshot == "" {
		details.IsDonationScreenshot = "No"
	}

	return details
}
