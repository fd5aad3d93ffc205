package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// FileSink writes each finalized session as one JSON document under the
// configured data directory.
type FileSink struct {
	dir string
	log *zap.Logger
}

func NewFileSink(dir string, log *zap.Logger) *FileSink {
	return &FileSink{dir: dir, log: log}
}

func (s *FileSink) SaveSession(ctx context.Context, session *models.Session) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode session %s: %w", session.ID, err)
	}

	path := filepath.Join(s.dir, session.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write session file: %w", err)
	}

	s.log.Info("Session saved to file",
		zap.String("sessionID", session.ID),
		zap.String("path", path),
	)
	return nil
}
