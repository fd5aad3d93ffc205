package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/metrics"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/persistence"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/store"
)

// SessionService is the façade over the session registry and the
// metrics engine. The transport layer calls only this.
type SessionService struct {
	store *store.Store
	sink  persistence.Sink
	log   *zap.Logger
}

func New(sessions *store.Store, sink persistence.Sink, log *zap.Logger) *SessionService {
	return &SessionService{
		store: sessions,
		sink:  sink,
		log:   log,
	}
}

// Start registers a new session and returns its id.
func (s *SessionService) Start(difficulty string, startTime int64, preFatigue *int) string {
	id := s.store.Create(difficulty, startTime, preFatigue)
	s.log.Info("Session started",
		zap.String("sessionID", id),
		zap.String("difficulty", difficulty),
	)
	return id
}

// Ingest appends one behavioral sample to a live session.
func (s *SessionService) Ingest(id string, sample models.Sample) error {
	return s.store.AppendSample(id, sample)
}

// Record appends one quiz response to a live session.
func (s *SessionService) Record(id string, response models.QuizResponse) error {
	return s.store.AppendResponse(id, response)
}

// End finalizes the session and hands the frozen snapshot to the
// persistence sink. The sink runs off the request path with no session
// lock held; a sink failure is logged but never resurrects or retries
// the finalize transition.
func (s *SessionService) End(id string, endTime int64, postFatigue *int) error {
	snapshot, err := s.store.Finalize(id, endTime, postFatigue)
	if err != nil {
		return err
	}

	s.log.Info("Session finalized",
		zap.String("sessionID", id),
		zap.Int("samples", len(snapshot.SensorData)),
		zap.Int("responses", len(snapshot.QuizResponses)),
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.sink.SaveSession(ctx, snapshot); err != nil {
			s.log.Error("Failed to persist finalized session",
				zap.String("sessionID", snapshot.ID),
				zap.Error(err),
			)
		}
	}()

	return nil
}

// Get returns a point-in-time snapshot of a live session.
func (s *SessionService) Get(id string) (*models.Session, error) {
	return s.store.Get(id)
}

// ComputeResults runs the metrics engine over a session-shaped value.
// It works identically whether the session came out of the registry or
// arrived wholesale from the caller; the same input yields bit-identical
// results. A nil EndTime computes with a zero duration.
func (s *SessionService) ComputeResults(session *models.Session) models.SessionResults {
	var duration int64
	if session.EndTime != nil {
		duration = *session.EndTime - session.StartTime
	}

	return models.SessionResults{
		Accuracy:      metrics.Accuracy(session.QuizResponses),
		Metrics:       metrics.Calculate(session.SensorData, duration),
		TotalDuration: duration,
	}
}
