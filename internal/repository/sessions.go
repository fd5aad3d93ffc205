// internal/repository/sessions.go
package repository

import (
	"gorm.io/gorm"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/database"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// SessionHeader is the list-view projection of a persisted session,
// without the sample and response children.
type SessionHeader struct {
	ID          string `json:"id"`
	Difficulty  string `json:"difficulty"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	PreFatigue  *int   `json:"preFatigue"`
	PostFatigue *int   `json:"postFatigue"`
}

// ListSessions returns the headers of all persisted sessions, newest
// first.
func ListSessions() ([]SessionHeader, error) {
	var headers []SessionHeader
	err := database.DB.Model(&models.SessionRecord{}).
		Order("created_at DESC").
		Find(&headers).Error
	return headers, err
}

// GetSession loads one persisted session with its samples and responses
// in timestamp order.
func GetSession(id string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := database.DB.
		Preload("Samples", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp ASC")
		}).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
