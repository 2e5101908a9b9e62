package message

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/classify"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// Controller handles the message-processing endpoints
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Handle processes one inbound WhatsApp notification
// POST /message
func (c *Controller) Handle(ctx *gin.Context) {
	var req MessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("Invalid /message payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid_payload",
			"detail": err.Error(),
		})
		return
	}

	requestID := requestIDFrom(ctx)

	utils.Zlog.Info("Received message",
		zap.String("request_id", requestID),
		zap.String("mobile_no", req.MobileNo),
		zap.String("msg_type", req.WAMsgType),
		zap.String("wa_message_id", req.WAMessageID))

	resp, err := c.service.Process(ctx.Request.Context(), requestID, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// ClassifyOnly runs classification without reply generation
// POST /classify-only
func (c *Controller) ClassifyOnly(ctx *gin.Context) {
	var req ClassifyOnlyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid_payload",
			"detail": err.Error(),
		})
		return
	}

	result := c.service.classifier.Classify(ctx.Request.Context(), req.Message, req.IsImage)
	ctx.JSON(http.StatusOK, result)
}

// Categories dumps the static taxonomy
// GET /categories
func (c *Controller) Categories(ctx *gin.Context) {
	out := make([]gin.H, 0, len(classify.CategoryOrder))
	for _, cat := range classify.CategoryOrder {
		def := classify.Taxonomy[cat]
		subs := make([]string, 0, len(def.Subcategories))
		for _, sub := range def.Subcategories {
			subs = append(subs, string(sub))
		}
		out = append(out, gin.H{
			"category":      string(cat),
			"definition":    def.Definition,
			"subcategories": subs,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": out})
}

// requestIDFrom prefers the middleware-assigned id; a fresh UUID covers
// direct handler invocations in tests.
func requestIDFrom(ctx *gin.Context) string {
	if idVal, exists := ctx.Get("request_id"); exists {
		if rid, ok := idVal.(string); ok && rid != "" {
			return rid
		}
	}
	return uuid.NewString()
}
