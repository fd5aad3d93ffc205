package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/persistence"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/store"
)

func newTestService() *SessionService {
	return New(store.New(zap.NewNop()), persistence.NopSink{}, zap.NewNop())
}

func vec(x, y float64) *models.Vec2 {
	return &models.Vec2{X: x, Y: y}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService()

	id := svc.Start(models.DifficultyMedium, 0, nil)
	require.NotEmpty(t, id)

	samples := []models.Sample{
		{Timestamp: 0, Position: vec(0, 0), Rotation: vec(0, 0)},
		{Timestamp: 500, Position: vec(5, 0), Rotation: vec(0.2, 0)},
		{Timestamp: 1000, Position: vec(5, 5), Rotation: vec(0.2, 0.3)},
	}
	for _, s := range samples {
		require.NoError(t, svc.Ingest(id, s))
	}

	responses := []models.QuizResponse{
		{QuizID: 1, SelectedAnswer: 1, IsCorrect: true, Timestamp: 300},
		{QuizID: 2, SelectedAnswer: 0, IsCorrect: false, Timestamp: 600},
		{QuizID: 3, SelectedAnswer: 2, IsCorrect: true, Timestamp: 900},
	}
	for _, r := range responses {
		require.NoError(t, svc.Record(id, r))
	}

	require.NoError(t, svc.End(id, 1000, nil))

	session, err := svc.Get(id)
	require.NoError(t, err)
	require.NotNil(t, session.EndTime)

	results := svc.ComputeResults(session)
	assert.InDelta(t, 66.67, results.Accuracy, 0.01)
	assert.Equal(t, int64(1000), results.TotalDuration)
	assert.InDelta(t, 10.0, results.Metrics.F4, 1e-9)
	assert.Equal(t, 1, results.Metrics.F5)

	// Further activity against the finalized session is rejected.
	assert.ErrorIs(t, svc.Ingest(id, models.Sample{Timestamp: 2000}), store.ErrNotFound)
	assert.ErrorIs(t, svc.End(id, 2000, nil), store.ErrAlreadyFinalized)
}

func TestComputeResultsMatchesAdHocPayload(t *testing.T) {
	svc := newTestService()

	id := svc.Start(models.DifficultyEasy, 0, nil)
	require.NoError(t, svc.Ingest(id, models.Sample{
		Timestamp: 0,
		Position:  vec(1, 1),
		Gaze:      &models.Gaze{Object: "boothA"},
	}))
	require.NoError(t, svc.Ingest(id, models.Sample{
		Timestamp: 800,
		Position:  vec(4, 5),
		Gaze:      &models.Gaze{Object: "empty"},
	}))
	require.NoError(t, svc.Record(id, models.QuizResponse{QuizID: 1, IsCorrect: true}))
	require.NoError(t, svc.End(id, 1000, nil))

	session, err := svc.Get(id)
	require.NoError(t, err)

	// A caller-assembled session with the same content must produce
	// bit-identical results without ever touching the registry.
	end := int64(1000)
	payload := &models.Session{
		ID:         "adhoc",
		Difficulty: models.DifficultyEasy,
		StartTime:  0,
		EndTime:    &end,
		SensorData: []models.Sample{
			{Timestamp: 0, Position: vec(1, 1), Gaze: &models.Gaze{Object: "boothA"}},
			{Timestamp: 800, Position: vec(4, 5), Gaze: &models.Gaze{Object: "empty"}},
		},
		QuizResponses: []models.QuizResponse{{QuizID: 1, IsCorrect: true}},
	}

	assert.Equal(t, svc.ComputeResults(session), svc.ComputeResults(payload))
}

func TestComputeResultsIsIdempotent(t *testing.T) {
	svc := newTestService()

	end := int64(4000)
	session := &models.Session{
		StartTime: 0,
		EndTime:   &end,
		SensorData: []models.Sample{
			{Timestamp: 0, Position: vec(0, 0), Rotation: vec(0, 0), Gaze: &models.Gaze{Object: "A"}},
			{Timestamp: 2000, Position: vec(3, 4), Rotation: vec(0.4, 0), Gaze: &models.Gaze{Object: "B"}},
			{Timestamp: 4000, Position: vec(3, 4), Rotation: vec(0.4, 0.1), Gaze: &models.Gaze{Object: "B"}},
		},
		QuizResponses: []models.QuizResponse{{QuizID: 9, IsCorrect: false}},
	}

	assert.Equal(t, svc.ComputeResults(session), svc.ComputeResults(session))
}

func TestComputeResultsWithoutEndTime(t *testing.T) {
	svc := newTestService()

	// An unfinalized payload degrades to a zero duration instead of
	// failing; rate features come out zero.
	session := &models.Session{
		StartTime: 0,
		SensorData: []models.Sample{
			{Timestamp: 0, Position: vec(0, 0)},
			{Timestamp: 1000, Position: vec(5, 0)},
		},
	}

	results := svc.ComputeResults(session)
	assert.Equal(t, int64(0), results.TotalDuration)
	assert.Equal(t, 0.0, results.Metrics.F4)
	assert.Equal(t, 0.0, results.Metrics.F13)
}
