package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/faq"
	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/loaders"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

type HealthController struct {
	db       *loaders.PostgresClient
	provider llm.Provider
	faqStore *faq.Store
}

func NewHealthController(db *loaders.PostgresClient, provider llm.Provider, faqStore *faq.Store) *HealthController {
	return &HealthController{db: db, provider: provider, faqStore: faqStore}
}

// HealthCheck reports overall service health with live connectivity flags
// GET /health
func (h *HealthController) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbStatus := "up"
	status := "healthy"
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		utils.Zlog.Error("Database health check failed", zap.Error(err))
		dbStatus = "down"
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	llmStatus := "not_configured"
	if h.provider != nil {
		llmStatus = h.provider.Name()
	}

	c.JSON(code, gin.H{
		"status":      status,
		"database":    dbStatus,
		"llm":         llmStatus,
		"faq_entries": h.faqStore.Len(),
		"timestamp":   time.Now().UTC(),
	})
}

// Liveness probe
// GET /health/live
func (h *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// Readiness probe
// GET /health/ready
func (h *HealthController) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.Zlog.Error("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"database":  "down",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"database":  "up",
		"timestamp": time.Now().UTC(),
	})
}
