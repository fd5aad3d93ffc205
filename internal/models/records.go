package models

import "time"

// SessionRecord is the persisted form of a finalized session. Samples
// and responses live in child tables keyed by the session id.
type SessionRecord struct {
	ID          string `gorm:"primaryKey"`
	Difficulty  string
	StartTime   int64
	EndTime     int64
	PreFatigue  *int
	PostFatigue *int
	CreatedAt   time.Time

	Samples   []SampleRecord   `gorm:"foreignKey:SessionID"`
	Responses []ResponseRecord `gorm:"foreignKey:SessionID"`
}

// SampleRecord flattens one behavioral sample for storage. Missing
// sub-objects are stored as zero values.
type SampleRecord struct {
	ID           uint   `gorm:"primaryKey"`
	SessionID    string `gorm:"index"`
	Timestamp    int64
	PositionX    float64
	PositionY    float64
	RotationX    float64
	RotationY    float64
	GazeX        float64
	GazeY        float64
	GazeObject   string
	GazeInCenter bool
}

type ResponseRecord struct {
	ID             uint   `gorm:"primaryKey"`
	SessionID      string `gorm:"index"`
	QuizID         int
	SelectedAnswer int
	IsCorrect      bool
	Timestamp      int64
}

// Record flattens the session into its persisted form.
func (s *Session) Record() SessionRecord {
	record := SessionRecord{
		ID:          s.ID,
		Difficulty:  s.Difficulty,
		StartTime:   s.StartTime,
		PreFatigue:  s.PreFatigue,
		PostFatigue: s.PostFatigue,
	}
	if s.EndTime != nil {
		record.EndTime = *s.EndTime
	}

	record.Samples = make([]SampleRecord, 0, len(s.SensorData))
	for _, sample := range s.SensorData {
		row := SampleRecord{
			SessionID: s.ID,
			Timestamp: sample.Timestamp,
		}
		if sample.Position != nil {
			row.PositionX = sample.Position.X
			row.PositionY = sample.Position.Y
		}
		if sample.Rotation != nil {
			row.RotationX = sample.Rotation.X
			row.RotationY = sample.Rotation.Y
		}
		if sample.Gaze != nil {
			row.GazeX = sample.Gaze.X
			row.GazeY = sample.Gaze.Y
			row.GazeObject = sample.Gaze.Object
			row.GazeInCenter = sample.Gaze.InCenter
		}
		record.Samples = append(record.Samples, row)
	}

	record.Responses = make([]ResponseRecord, 0, len(s.QuizResponses))
	for _, resp := range s.QuizResponses {
		record.Responses = append(record.Responses, ResponseRecord{
			SessionID:      s.ID,
			QuizID:         resp.QuizID,
			SelectedAnswer: resp.SelectedAnswer,
			IsCorrect:      resp.IsCorrect,
			Timestamp:      resp.Timestamp,
		})
	}

	return record
}
