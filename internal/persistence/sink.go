package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/config"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/database"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// Sink receives finalized session snapshots for storage. SaveSession is
// called off the request path with an immutable snapshot; it must not
// mutate the session, and a failure must not affect the in-memory copy.
type Sink interface {
	SaveSession(ctx context.Context, session *models.Session) error
}

// New selects the sink named by the persistence configuration.
func New(log *zap.Logger) (Sink, error) {
	driver := config.Conf.Persistence.Driver
	switch driver {
	case "postgres":
		if database.DB == nil {
			return nil, fmt.Errorf("persistence driver %q requires an initialized database", driver)
		}
		return NewGormSink(database.DB, log), nil
	case "file":
		return NewFileSink(config.Conf.Persistence.Directory, log), nil
	case "none":
		return NopSink{}, nil
	default:
		return nil, fmt.Errorf("unknown persistence driver %q", driver)
	}
}

// NopSink discards sessions. Used when persistence is disabled and in
// tests.
type NopSink struct{}

func (NopSink) SaveSession(ctx context.Context, session *models.Session) error {
	return nil
}
