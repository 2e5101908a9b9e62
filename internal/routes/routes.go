package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SevaSansthan/wa-responder/internal/api/message"
	"github.com/SevaSansthan/wa-responder/internal/config"
	"github.com/SevaSansthan/wa-responder/internal/controllers"
	"github.com/SevaSansthan/wa-responder/internal/faq"
	"github.com/SevaSansthan/wa-responder/internal/llm"
	"github.com/SevaSansthan/wa-responder/internal/loaders"
	"github.com/SevaSansthan/wa-responder/internal/middleware"
)

// Deps bundles what the route tree needs from main.
type Deps struct {
	Cfg      *config.Config
	DB       *loaders.PostgresClient
	Provider llm.Provider
	FAQStore *faq.Store
	Service  *message.Service
}

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, deps Deps) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	SetupHealthRoutes(router, deps)
	message.RegisterRoutes(router, deps.Service)

	system := controllers.NewSystemController(deps.Cfg)
	router.GET("/metrics", system.Metrics)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", system.Status)
		v1.GET("/info", system.Info)
	}

	Setup404Handler(router)
}
