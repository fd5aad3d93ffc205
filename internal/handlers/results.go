// internal/handlers/results.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/service"
)

// ResultsHandler computes behavioral features and quiz accuracy, either
// from a caller-supplied payload or from a finalized live session.
type ResultsHandler struct {
	log     *zap.Logger
	service *service.SessionService
}

func NewResultsHandler(log *zap.Logger, svc *service.SessionService) *ResultsHandler {
	return &ResultsHandler{log: log, service: svc}
}

type calculateRequest struct {
	SessionData *models.Session `json:"sessionData"`
}

// Calculate runs the engine over a session supplied wholesale by the
// caller. The payload never has to have passed through the registry;
// missing nested sample fields degrade to zero values rather than
// failing the computation.
func (h *ResultsHandler) Calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionData == nil {
		h.log.Warn("Failed to bind session data for calculation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session data"})
		return
	}

	c.JSON(http.StatusOK, h.service.ComputeResults(req.SessionData))
}

// SessionMetrics computes the features of a finalized live session by
// id.
func (h *ResultsHandler) SessionMetrics(c *gin.Context) {
	id := c.Param("sessionId")

	session, err := h.service.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if session.EndTime == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Session not finalized"})
		return
	}

	c.JSON(http.StatusOK, h.service.ComputeResults(session))
}
