package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlab-hq/growth-backend/internal/auth"
	"github.com/growthlab-hq/growth-backend/internal/quadrant/service"
)

type Handler struct {
	fusion *service.Fusion
}

func NewHandler(fusion *service.Fusion) *Handler {
	return &Handler{fusion: fusion}
}

// Get returns the caller's growth quadrant placement
func (h *Handler) Get(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	placement, err := h.fusion.Placement(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute placement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"placement": placement})
}

// Register registers the growth quadrant routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/growth-quadrant", h.Get)
}
