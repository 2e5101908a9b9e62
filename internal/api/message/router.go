package message

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the message-processing endpoints
func RegisterRoutes(router *gin.Engine, service *Service) {
	ctrl := NewController(service)

	router.POST("/message", ctrl.Handle)
	router.POST("/classify-only", ctrl.ClassifyOnly)
	router.GET("/categories", ctrl.Categories)
}
