package persistence

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// GormSink writes finalized sessions to the relational store: one
// parent row plus sample and response child rows.
type GormSink struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormSink(db *gorm.DB, log *zap.Logger) *GormSink {
	return &GormSink{db: db, log: log}
}

func (s *GormSink) SaveSession(ctx context.Context, session *models.Session) error {
	record := session.Record()

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return err
	}

	s.log.Info("Session saved to database",
		zap.String("sessionID", session.ID),
		zap.Int("samples", len(record.Samples)),
		zap.Int("responses", len(record.Responses)),
	)
	return nil
}
