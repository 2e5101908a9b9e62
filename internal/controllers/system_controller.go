package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SevaSansthan/wa-responder/internal/config"
	"github.com/SevaSansthan/wa-responder/internal/utils"
)

type SystemController struct {
	cfg *config.Config
}

func NewSystemController(cfg *config.Config) *SystemController {
	return &SystemController{cfg: cfg}
}

// Status returns current system status information
// GET /api/v1/status
func (s *SystemController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.ServiceName,
		"version":     "1.0.0",
		"environment": s.cfg.Environment,
		"hostname":    s.cfg.Hostname,
		"timestamp":   time.Now().UTC(),
	})
}

// Info returns detailed system information
// GET /api/v1/info
func (s *SystemController) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.ServiceName,
		"version":     "1.0.0",
		"environment": s.cfg.Environment,
		"hostname":    s.cfg.Hostname,
		"debug":       s.cfg.Debug,
		"log_level":   s.cfg.LogLevel,
		"llm":         s.cfg.LLMProvider,
		"timestamp":   time.Now().UTC(),
	})
}

// Metrics returns in-process counters
// GET /metrics
func (s *SystemController) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetMetrics().Snapshot())
}
