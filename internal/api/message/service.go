package message

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/classify"
	"github.com/SevaSansthan/wa-responder/internal/loaders"
	"github.com/SevaSansthan/wa-responder/internal/reply"
	"github.com/SevaSansthan/wa-responder/internal/utils"
	"github.com/SevaSansthan/wa-responder/internal/vision"
)

// DefaultReply is the text-path default used when neither body text nor a
// usable image URL is present.
const DefaultReply = "Sorry, I couldn't process your request. Please provide more details."

// LogStore persists the per-request log row; writes are best-effort.
type LogStore interface {
	InsertMessageLog(ctx context.Context, requestID string, rec loaders.Record)
	UpdateMessageLog(ctx context.Context, requestID string, rec loaders.Record)
}

// Forwarder schedules the fire-and-forget replica forward.
type Forwarder interface {
	Enqueue(requestID string, payload any)
}

// Classifier produces a total classification for any input.
type Classifier interface {
	Classify(ctx context.Context, message string, isImage bool) classify.Result
}

// Router maps a classification to a non-empty reply.
type Router interface {
	Route(ctx context.Context, result classify.Result, rc reply.Context) string
}

// ImageAnalyzer runs the screenshot pipeline.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, url string) vision.Analysis
	ExtractDonationDetails(ctx context.Context, transcription, userName string) vision.DonationDetails
}

// Service orchestrates one request: log, classify, dispatch, log, forward.
type Service struct {
	logs       LogStore
	classifier Classifier
	router     Router
	images     ImageAnalyzer
	replica    Forwarder
}

func NewService(logs LogStore, classifier Classifier, router Router, images ImageAnalyzer, replica Forwarder) *Service {
	return &Service{
		logs:       logs,
		classifier: classifier,
		router:     router,
		images:     images,
		replica:    replica,
	}
}

// Process handles one inbound message end to end. Upstream failures are
// absorbed into fallback replies; only defects in this control flow itself
// surface as an error (and a 500).
func (s *Service) Process(ctx context.Context, requestID string, req *MessageRequest) (resp *MessageResponse, err error) {
	startTime := time.Now().UTC()
	metrics := utils.GetMetrics()
	metrics.RequestsTotal.Add(1)

	phoneNumber := firstNonEmpty(req.MobileNo, req.WAMsgTo, "Unknown")
	userName := firstNonEmpty(req.DonorName, req.WaName, "User")
	msgType := strings.ToLower(firstNonEmpty(req.WAMsgType, "text"))

	initial := s.initialRecord(requestID, req, startTime, phoneNumber, userName, msgType)
	s.logs.InsertMessageLog(ctx, requestID, initial)

	// Convert a panic in the handler's own control flow into an error row
	// and a 500; upstream API failures never reach this path.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			metrics.ErrorsTotal.Add(1)
			s.writeErrorRecord(ctx, requestID, initial, startTime, err)
			utils.Zlog.Error("Message processing panicked",
				zap.String("request_id", requestID),
				zap.Any("panic", r))
		}
	}()

	classification := classify.DefaultResult("No classification performed")
	aiResponse := DefaultReply
	reasoning := "Default response due to invalid input or processing error"

	var imageAnalysis *vision.Analysis
	var donationDetails *vision.DonationDetails

	switch {
	case msgType == "text" && req.WAMsgText != "":
		classification = s.classifier.Classify(ctx, req.WAMsgText, false)
		reasoning = classification.Reasoning
		aiResponse = s.router.Route(ctx, classification, reply.Context{
			Message:  req.WAMsgText,
			UserName: userName,
			Language: classification.QuestionLanguage,
			Script:   classification.QuestionScript,
		})

	case msgType == "image" && req.WAURL != "":
		analysis := s.images.AnalyzeImage(ctx, req.WAURL)
		imageAnalysis = &analysis

		if analysis.Status == vision.StatusSuccess {
			details := s.images.ExtractDonationDetails(ctx, analysis.Transcription, userName)
			donationDetails = &details

			classification = s.classifier.Classify(ctx, analysis.Transcription, true)
			reasoning = classification.Reasoning

			if details.IsScreenshot() && strings.TrimSpace(details.GeneratedResponse) != "" {
				aiResponse = details.GeneratedResponse
				reasoning = "Donation screenshot acknowledged"
			} else {
				aiResponse = s.router.Route(ctx, classification, reply.Context{
					Message:  analysis.Transcription,
					UserName: userName,
					Language: classification.QuestionLanguage,
					Script:   classification.QuestionScript,
				})
			}
		} else {
			// Extraction is skipped entirely; classification proceeds on
			// the empty transcription, collapses to the default, and still
			// routes so the donor gets a presentable reply.
			classification = s.classifier.Classify(ctx, analysis.Transcription, true)
			reasoning = "Image analysis failed: " + analysis.Error
			aiResponse = s.router.Route(ctx, classification, reply.Context{
				Message:  analysis.Transcription,
				UserName: userName,
				Language: classification.QuestionLanguage,
				Script:   classification.QuestionScript,
			})
		}

	default:
		reasoning = "Invalid message type or missing text/URL"
		classification.Reasoning = reasoning
	}

	metrics.CountCategory(classification.Classification)

	endTime := time.Now().UTC()
	final := initial.Clone()
	final["status"] = "success"
	final["processing_end_time"] = endTime
	final["processing_duration_ms"] = endTime.Sub(startTime).Milliseconds()
	final["ai_classification"] = classification.Classification
	final["ai_confidence"] = classification.Confidence
	final["ai_reasoning"] = classification.Reasoning
	final["interested_to_donate"] = classification.InterestedToDonate
	final["question_language"] = classification.QuestionLanguage
	final["question_script"] = classification.QuestionScript
	final["ai_response"] = aiResponse
	final["ai_reason"] = reasoning
	final["updated_at"] = endTime
	if imageAnalysis != nil {
		final["image_transcription"] = imageAnalysis.Transcription
		analysisMap := map[string]any{
			"transcription": imageAnalysis.Transcription,
			"status":        imageAnalysis.Status,
		}
		if imageAnalysis.Error != "" {
			analysisMap["error"] = imageAnalysis.Error
		}
		if donationDetails != nil {
			analysisMap["donation_details"] = map[string]any{
				"is_donation_screenshot": donationDetails.IsDonationScreenshot,
				"amount":                 donationDetails.Amount,
				"transaction_id":         donationDetails.TransactionID,
				"date":                   donationDetails.Date,
				"payment_app":            donationDetails.PaymentApp,
				"account":                donationDetails.Account,
			}
		}
		final["donation_analysis"] = analysisMap
	}
	s.logs.UpdateMessageLog(ctx, requestID, final)

	s.replica.Enqueue(requestID, req)

	return &MessageResponse{
		PhoneNumber: phoneNumber,
		AIResponse:  aiResponse,
		AIReason:    reasoning,
		WAAutoID:    req.WAAutoID,
		WAMessageID: req.WAMessageID,
	}, nil
}

func (s *Service) initialRecord(requestID string, req *MessageRequest, startTime time.Time, phoneNumber, userName, msgType string) loaders.Record {
	return loaders.Record{
		"request_id":            requestID,
		"endpoint":              "/message",
		"method":                "POST",
		"status":                "processing",
		"processing_start_time": startTime,
		"raw_request":           rawRequestMap(req),
		"wa_auto_id":            req.WAAutoID,
		"wa_in_out":             req.WAInOut,
		"account_code":          req.AccountCode,
		"wa_received_at":        req.WAReceivedAt,
		"ng_code":               req.NGCode,
		"wa_name":               req.WaName,
		"mobile_no":             phoneNumber,
		"wa_msg_to":             req.WAMsgTo,
		"wa_msg_text":           req.WAMsgText,
		"wa_msg_type":           msgType,
		"integration_type":      req.IntegrationType,
		"wa_message_id":         req.WAMessageID,
		"wa_url":                req.WAURL,
		"donor_name":            userName,
		"created_at":            startTime,
	}
}

func (s *Service) writeErrorRecord(ctx context.Context, requestID string, initial loaders.Record, startTime time.Time, cause error) {
	endTime := time.Now().UTC()
	rec := initial.Clone()
	rec["status"] = "error"
	rec["processing_end_time"] = endTime
	rec["processing_duration_ms"] = endTime.Sub(startTime).Milliseconds()
	rec["error_type"] = "internal_error"
	rec["error_message"] = cause.Error()
	rec["updated_at"] = endTime
	s.logs.UpdateMessageLog(ctx, requestID, rec)
}

// rawRequestMap keeps the raw payload projection free of nil fields, the
// way the gateway sends it.
func rawRequestMap(req *MessageRequest) map[string]any {
	raw := map[string]any{}
	put := func(k string, v any) {
		switch val := v.(type) {
		case string:
			if val != "" {
				raw[k] = val
			}
		case *int:
			if val != nil {
				raw[k] = *val
			}
		case *time.Time:
			if val != nil {
				raw[k] = *val
			}
		}
	}
	put("WA_Auto_Id", req.WAAutoID)
	put("WA_In_Out", req.WAInOut)
	put("Account_Code", req.AccountCode)
	put("WA_Received_At", req.WAReceivedAt)
	put("NGCode", req.NGCode)
	put("Wa_Name", req.WaName)
	put("MobileNo", req.MobileNo)
	put("WA_Msg_To", req.WAMsgTo)
	put("WA_Msg_Text", req.WAMsgText)
	put("WA_Msg_Type", req.WAMsgType)
	put("Integration_Type", req.IntegrationType)
	put("WA_Message_Id", req.WAMessageID)
	put("WA_Url", req.WAURL)
	put("Status", req.Status)
	put("Donor_Name", req.DonorName)
	return raw
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
