package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

func newTestStore() *Store {
	return New(zap.NewNop())
}

func TestCreateMintsUniqueIDs(t *testing.T) {
	s := newTestStore()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := s.Create(models.DifficultyEasy, 0, nil)
		require.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 100, s.Len())
}

func TestAppendAndGet(t *testing.T) {
	s := newTestStore()
	id := s.Create(models.DifficultyMedium, 100, nil)

	require.NoError(t, s.AppendSample(id, models.Sample{Timestamp: 150}))
	require.NoError(t, s.AppendResponse(id, models.QuizResponse{QuizID: 7, IsCorrect: true}))

	session, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyMedium, session.Difficulty)
	assert.Len(t, session.SensorData, 1)
	assert.Len(t, session.QuizResponses, 1)
	assert.Nil(t, session.EndTime)
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	s := newTestStore()

	assert.ErrorIs(t, s.AppendSample("missing", models.Sample{}), ErrNotFound)
	assert.ErrorIs(t, s.AppendResponse("missing", models.QuizResponse{}), ErrNotFound)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Finalize("missing", 0, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinalizeFreezesSession(t *testing.T) {
	s := newTestStore()
	id := s.Create(models.DifficultyHard, 0, nil)
	require.NoError(t, s.AppendSample(id, models.Sample{Timestamp: 10}))

	snapshot, err := s.Finalize(id, 1000, nil)
	require.NoError(t, err)
	require.NotNil(t, snapshot.EndTime)
	assert.Equal(t, int64(1000), *snapshot.EndTime)

	// Appends after finalize are rejected and the sample count is
	// unchanged.
	assert.ErrorIs(t, s.AppendSample(id, models.Sample{Timestamp: 20}), ErrNotFound)
	assert.ErrorIs(t, s.AppendResponse(id, models.QuizResponse{}), ErrNotFound)

	session, err := s.Get(id)
	require.NoError(t, err)
	assert.Len(t, session.SensorData, 1)
}

func TestDoubleFinalize(t *testing.T) {
	s := newTestStore()
	id := s.Create(models.DifficultyEasy, 0, nil)

	_, err := s.Finalize(id, 500, nil)
	require.NoError(t, err)

	_, err = s.Finalize(id, 600, nil)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	// The first end time sticks.
	session, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, int64(500), *session.EndTime)
}

func TestGetReturnsIsolatedSnapshot(t *testing.T) {
	s := newTestStore()
	id := s.Create(models.DifficultyEasy, 0, nil)
	require.NoError(t, s.AppendSample(id, models.Sample{Timestamp: 1}))

	snapshot, err := s.Get(id)
	require.NoError(t, err)
	require.NoError(t, s.AppendSample(id, models.Sample{Timestamp: 2}))

	assert.Len(t, snapshot.SensorData, 1)
}

func TestConcurrentAppendsToDistinctSessions(t *testing.T) {
	const sessions = 8
	const samplesPerSession = 1000

	s := newTestStore()

	ids := make([]string, sessions)
	for i := range ids {
		ids[i] = s.Create(models.DifficultyEasy, 0, nil)
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(owner int, id string) {
			defer wg.Done()
			marker := fmt.Sprintf("owner-%d", owner)
			for n := 0; n < samplesPerSession; n++ {
				err := s.AppendSample(id, models.Sample{
					Timestamp: int64(n),
					Gaze:      &models.Gaze{Object: marker},
				})
				if err != nil {
					t.Errorf("append failed: %v", err)
					return
				}
			}
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		session, err := s.Get(id)
		require.NoError(t, err)
		require.Len(t, session.SensorData, samplesPerSession)

		marker := fmt.Sprintf("owner-%d", i)
		for _, sample := range session.SensorData {
			require.Equal(t, marker, sample.Gaze.Object,
				"session %s contains another session's sample", id)
		}
	}
}

func TestConcurrentFinalizeAndAppend(t *testing.T) {
	s := newTestStore()
	id := s.Create(models.DifficultyEasy, 0, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for n := 0; n < 500; n++ {
			if err := s.AppendSample(id, models.Sample{Timestamp: int64(n)}); err != nil {
				return // session was finalized underneath us
			}
		}
	}()
	go func() {
		defer wg.Done()
		s.Finalize(id, 999, nil)
	}()
	wg.Wait()

	// Whatever the interleaving, the frozen snapshot must be stable.
	before, err := s.Get(id)
	require.NoError(t, err)
	after, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, len(before.SensorData), len(after.SensorData))
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	s := newTestStore()
	s.Create(models.DifficultyEasy, 0, nil)

	time.Sleep(5 * time.Millisecond)

	// A generous idle timeout keeps the session alive.
	assert.Equal(t, 0, s.Sweep(time.Hour, time.Hour))
	assert.Equal(t, 1, s.Len())

	// A tiny one evicts it.
	assert.Equal(t, 1, s.Sweep(time.Millisecond, time.Hour))
	assert.Equal(t, 0, s.Len())
}

func TestSweepEvictsFinalizedSessionsAfterRetention(t *testing.T) {
	s := newTestStore()
	id := s.Create(models.DifficultyEasy, 0, nil)
	_, err := s.Finalize(id, 100, nil)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// Finalized sessions ignore the idle timeout and follow retention.
	assert.Equal(t, 0, s.Sweep(time.Millisecond, time.Hour))
	assert.Equal(t, 1, s.Sweep(time.Millisecond, time.Millisecond))
	assert.Equal(t, 0, s.Len())
}
