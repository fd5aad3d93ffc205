// internal/handlers/data.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/repository"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/service"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/store"
)

// DataHandler exposes the session lifecycle: start, sensor ingestion,
// quiz responses, end, and session reads.
type DataHandler struct {
	log     *zap.Logger
	service *service.SessionService
}

func NewDataHandler(log *zap.Logger, svc *service.SessionService) *DataHandler {
	return &DataHandler{log: log, service: svc}
}

type startSessionRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Timestamp  int64  `json:"timestamp"`
	PreFatigue *int   `json:"preFatigue"`
}

func (h *DataHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Failed to bind session start request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !models.ValidDifficulty(req.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid difficulty level"})
		return
	}

	id := h.service.Start(req.Difficulty, req.Timestamp, req.PreFatigue)
	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

type sensorRequest struct {
	SessionID string        `json:"sessionId" binding:"required"`
	Data      models.Sample `json:"data"`
}

func (h *DataHandler) IngestSensor(c *gin.Context) {
	var req sensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Failed to bind sensor data", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sensor data"})
		return
	}

	if err := h.service.Ingest(req.SessionID, req.Data); err != nil {
		// A dropped sample must not abort the client's session; the 404
		// tells the client its session is gone, nothing more.
		h.log.Warn("Rejected sensor data", zap.String("sessionID", req.SessionID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found", "receivedSessionId": req.SessionID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type quizResponseRequest struct {
	SessionID      string `json:"sessionId" binding:"required"`
	QuizID         int    `json:"quizId"`
	SelectedAnswer int    `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	Timestamp      int64  `json:"timestamp"`
}

func (h *DataHandler) RecordQuizResponse(c *gin.Context) {
	var req quizResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Failed to bind quiz response", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz response"})
		return
	}

	response := models.QuizResponse{
		QuizID:         req.QuizID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      req.IsCorrect,
		Timestamp:      req.Timestamp,
	}
	if err := h.service.Record(req.SessionID, response); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type endSessionRequest struct {
	SessionID   string `json:"sessionId" binding:"required"`
	Timestamp   int64  `json:"timestamp"`
	PostFatigue *int   `json:"postFatigue"`
}

func (h *DataHandler) EndSession(c *gin.Context) {
	var req endSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Failed to bind session end request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.service.End(req.SessionID, req.Timestamp, req.PostFatigue)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, store.ErrAlreadyFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "Session already finalized"})
	case err != nil:
		h.log.Error("Failed to end session", zap.String("sessionID", req.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetSession returns a point-in-time snapshot of a live session.
func (h *DataHandler) GetSession(c *gin.Context) {
	session, err := h.service.Get(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListStoredSessions lists persisted session headers, newest first.
func (h *DataHandler) ListStoredSessions(c *gin.Context) {
	headers, err := repository.ListSessions()
	if err != nil {
		h.log.Error("Failed to list sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": headers, "count": len(headers)})
}

// GetStoredSession returns one persisted session with its samples and
// responses.
func (h *DataHandler) GetStoredSession(c *gin.Context) {
	record, err := repository.GetSession(c.Param("sessionId"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to get stored session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get session"})
		return
	}
	c.JSON(http.StatusOK, record)
}
