package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SevaSansthan/wa-responder/internal/controllers"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, deps Deps) {
	healthController := controllers.NewHealthController(deps.DB, deps.Provider, deps.FAQStore)

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.GET("/health", healthController.HealthCheck)
	router.GET("/health/live", healthController.Liveness)
	router.GET("/health/ready", healthController.Readiness)
}
