// internal/handlers/quiz.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// QuizHandler serves the difficulty-keyed question sets and verifies
// answers against the bank. It never mutates session state.
type QuizHandler struct {
	log  *zap.Logger
	bank *models.QuizBank
}

func NewQuizHandler(log *zap.Logger, bank *models.QuizBank) *QuizHandler {
	return &QuizHandler{log: log, bank: bank}
}

// ByDifficulty returns a shuffled copy of the question set for the
// requested difficulty.
func (h *QuizHandler) ByDifficulty(c *gin.Context) {
	difficulty := c.Param("difficulty")

	quizzes, ok := h.bank.ForDifficulty(difficulty)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid difficulty level"})
		return
	}

	shuffled := models.ShuffledQuizzes(quizzes)
	c.JSON(http.StatusOK, gin.H{
		"difficulty": difficulty,
		"quizzes":    shuffled,
		"count":      len(shuffled),
	})
}

type verifyRequest struct {
	Difficulty     string `json:"difficulty" binding:"required"`
	QuizID         int    `json:"quizId"`
	SelectedAnswer int    `json:"selectedAnswer"`
}

// Verify checks a selected answer against the bank.
func (h *QuizHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !models.ValidDifficulty(req.Difficulty) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid difficulty level"})
		return
	}

	quiz, ok := h.bank.Find(req.Difficulty, req.QuizID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizId":        req.QuizID,
		"isCorrect":     quiz.CorrectAnswer == req.SelectedAnswer,
		"correctAnswer": quiz.CorrectAnswer,
	})
}
