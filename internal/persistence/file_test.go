package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

func TestFileSinkWritesSessionDocument(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(filepath.Join(dir, "sessions"), zap.NewNop())

	end := int64(2000)
	session := &models.Session{
		ID:         "session_test_abc123",
		Difficulty: models.DifficultyHard,
		StartTime:  1000,
		EndTime:    &end,
		SensorData: []models.Sample{
			{Timestamp: 1500, Position: &models.Vec2{X: 1, Y: 2}},
		},
		QuizResponses: []models.QuizResponse{
			{QuizID: 201, SelectedAnswer: 2, IsCorrect: true, Timestamp: 1800},
		},
	}

	require.NoError(t, sink.SaveSession(context.Background(), session))

	data, err := os.ReadFile(filepath.Join(dir, "sessions", "session_test_abc123.json"))
	require.NoError(t, err)

	var decoded models.Session
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, session.ID, decoded.ID)
	assert.Equal(t, session.Difficulty, decoded.Difficulty)
	require.Len(t, decoded.SensorData, 1)
	assert.Equal(t, int64(1500), decoded.SensorData[0].Timestamp)
	require.Len(t, decoded.QuizResponses, 1)
	assert.True(t, decoded.QuizResponses[0].IsCorrect)
}
