package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
	"github.com/growthlab-hq/growth-backend/internal/assessment/service"
	"github.com/growthlab-hq/growth-backend/internal/auth"
)

type Handler struct {
	pipeline *service.Pipeline
}

func NewHandler(pipeline *service.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// Submit runs the assessment pipeline for the posted intake
func (h *Handler) Submit(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var body SubmitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	assessment, err := h.pipeline.Submit(c.Request.Context(), body.Intake(), userID)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"missing": validationErr.Missing,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process assessment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assessment": assessment})
}

// Get retrieves an assessment by ID
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assessment id required"})
		return
	}

	assessment, err := h.pipeline.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAssessmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get assessment"})
		return
	}

	// Assessments are owned by the submitting user.
	if assessment.UserID != auth.UserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// List returns the caller's assessments, newest first
func (h *Handler) List(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	assessments, err := h.pipeline.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}
