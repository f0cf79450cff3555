package http

import "github.com/gin-gonic/gin"

// Register registers the assessment routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/assessments", h.Submit)
	rg.GET("/assessments", h.List)
	rg.GET("/assessments/:id", h.Get)
}
