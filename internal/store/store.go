package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

var (
	// ErrNotFound is returned for an unknown session id, and for
	// mutating calls against a session that has already been finalized.
	ErrNotFound = errors.New("session not found")
	// ErrAlreadyFinalized is returned by a second finalize call.
	ErrAlreadyFinalized = errors.New("session already finalized")
)

// entry wraps one live session with its own lock, so high-frequency
// ingestion for one session never contends with operations on another.
// Appends and finalize serialize on mu; once finalized is set the
// session never changes again.
type entry struct {
	mu          sync.Mutex
	session     *models.Session
	finalized   bool
	lastTouched time.Time
	finalizedAt time.Time
}

// Store is the registry of live sessions. The outer map lock is held
// only for id lookup and insert/delete; all per-session work happens
// under the entry lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	log      *zap.Logger
}

func New(log *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		log:      log,
	}
}

// Create mints a new session and returns its id. Ids carry a timestamp
// prefix plus a random suffix; on the off chance of a collision the
// mint is retried rather than overwriting the existing session.
func (s *Store) Create(difficulty string, startTime int64, preFatigue *int) string {
	for {
		id := fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])

		s.mu.Lock()
		if _, exists := s.sessions[id]; exists {
			s.mu.Unlock()
			continue
		}
		s.sessions[id] = &entry{
			session: &models.Session{
				ID:            id,
				Difficulty:    difficulty,
				StartTime:     startTime,
				PreFatigue:    preFatigue,
				SensorData:    []models.Sample{},
				QuizResponses: []models.QuizResponse{},
			},
			lastTouched: time.Now(),
		}
		s.mu.Unlock()

		return id
	}
}

func (s *Store) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	return e, ok
}

// AppendSample appends one behavioral sample in arrival order. A
// finalized session rejects further samples with ErrNotFound.
func (s *Store) AppendSample(id string, sample models.Sample) error {
	e, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalized {
		return ErrNotFound
	}

	e.session.SensorData = append(e.session.SensorData, sample)
	e.lastTouched = time.Now()
	return nil
}

// AppendResponse appends one quiz response. Duplicate quizIds are
// stored as-is; the engine never assumes uniqueness.
func (s *Store) AppendResponse(id string, response models.QuizResponse) error {
	e, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalized {
		return ErrNotFound
	}

	e.session.QuizResponses = append(e.session.QuizResponses, response)
	e.lastTouched = time.Now()
	return nil
}

// Finalize freezes the session exactly once and returns an immutable
// snapshot. The entry lock guarantees no in-flight append interleaves
// with the transition.
func (s *Store) Finalize(id string, endTime int64, postFatigue *int) (*models.Session, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalized {
		return nil, ErrAlreadyFinalized
	}

	end := endTime
	e.session.EndTime = &end
	if postFatigue != nil {
		e.session.PostFatigue = postFatigue
	}
	e.finalized = true
	e.finalizedAt = time.Now()

	return e.session.Clone(), nil
}

// Get returns a consistent point-in-time copy of the session, safe to
// call concurrently with appends.
func (s *Store) Get(id string) (*models.Session, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions that went idle without an end call, and
// finalized sessions past their retention window. Returns the number
// of sessions removed.
func (s *Store) Sweep(idleTimeout, retention time.Duration) int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		expired := (!e.finalized && now.Sub(e.lastTouched) > idleTimeout) ||
			(e.finalized && now.Sub(e.finalizedAt) > retention)
		samples := len(e.session.SensorData)
		finalized := e.finalized
		e.mu.Unlock()

		if expired {
			delete(s.sessions, id)
			removed++
			s.log.Debug("Evicted session",
				zap.String("sessionID", id),
				zap.Bool("finalized", finalized),
				zap.Int("samples", samples),
			)
		}
	}

	return removed
}

// StartJanitor sweeps the registry on a ticker until ctx is done. A
// crashed client that never calls end would otherwise leak its session
// forever.
func (s *Store) StartJanitor(ctx context.Context, interval, idleTimeout, retention time.Duration) {
	s.log.Info("Starting session janitor",
		zap.Duration("interval", interval),
		zap.Duration("idleTimeout", idleTimeout),
		zap.Duration("retention", retention),
	)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(idleTimeout, retention); n > 0 {
					s.log.Info("Evicted expired sessions", zap.Int("count", n))
				}
			}
		}
	}()
}
