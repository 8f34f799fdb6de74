package handler

import (
	"errors"
	"net/http"

	"diascreen/internal/classifier"
	"diascreen/internal/features"
	"diascreen/internal/middleware"
	"diascreen/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssessmentHandler interface {
	Predict(c *gin.Context)
	History(c *gin.Context)
}

type assessmentHandler struct {
	assessments service.AssessmentService
	logger      *zap.Logger
}

func NewAssessmentHandler(assessments service.AssessmentService, logger *zap.Logger) AssessmentHandler {
	return &assessmentHandler{assessments: assessments, logger: logger}
}

// Predict handles POST /api/assessments. Inputs arrive as form fields
// named after the clinical measurements (Pregnancies, Glucose, ...).
func (h *assessmentHandler) Predict(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsernameKey).(string)

	form := make(map[string]string, len(features.Fields))
	for _, spec := range features.Fields {
		if value, ok := c.GetPostForm(spec.Name); ok {
			form[spec.Name] = value
		}
	}

	summary, err := h.assessments.Assess(username, form)
	if err != nil {
		switch {
		case errors.Is(err, features.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, classifier.ErrUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model not loaded"})
		default:
			h.logger.Error("Failed to assess", zap.String("username", username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assessment"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// History handles GET /api/assessments, returning the caller's
// assessments most recent first.
func (h *assessmentHandler) History(c *gin.Context) {
	username := c.MustGet(middleware.ContextUsernameKey).(string)

	assessments, err := h.assessments.History(username)
	if err != nil {
		h.logger.Error("Failed to get history", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"total":       len(assessments),
	})
}
