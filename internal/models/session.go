package models

// Difficulty levels accepted at session start. The quiz bank carries
// one question set per level.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d names a known difficulty level.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Vec2 is a 2-D coordinate pair shared by position and rotation data.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gaze describes what the simulated view is directed at. Object holds a
// target identifier, or the sentinel "empty" when the view rests on
// blank space.
type Gaze struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Object   string  `json:"object"`
	InCenter bool    `json:"inCenter"`
}

// Sample is one timestamped behavioral observation streamed by the
// client. The sub-objects are pointers so a partially formed record can
// be stored as received; the metrics engine treats a missing part as
// zero/absent instead of rejecting the sample.
type Sample struct {
	Timestamp int64 `json:"timestamp"`
	Position  *Vec2 `json:"position,omitempty"`
	Rotation  *Vec2 `json:"rotation,omitempty"`
	Gaze      *Gaze `json:"gaze,omitempty"`
}

// QuizResponse records one answered quiz item. Duplicate quizIds are
// legal; late retransmissions are appended as-is.
type QuizResponse struct {
	QuizID         int   `json:"quizId"`
	SelectedAnswer int   `json:"selectedAnswer"`
	IsCorrect      bool  `json:"isCorrect"`
	Timestamp      int64 `json:"timestamp"`
}

// Session is one timed interaction instance. SensorData keeps arrival
// order, which the engine trusts as temporal order. EndTime stays nil
// until the session is finalized; after that the session is immutable.
type Session struct {
	ID            string         `json:"id"`
	Difficulty    string         `json:"difficulty"`
	StartTime     int64          `json:"startTime"`
	EndTime       *int64         `json:"endTime"`
	PreFatigue    *int           `json:"preFatigue,omitempty"`
	PostFatigue   *int           `json:"postFatigue,omitempty"`
	SensorData    []Sample       `json:"sensorData"`
	QuizResponses []QuizResponse `json:"quizResponses"`
}

// Clone returns a deep copy of the session. Sample sub-objects are
// shared between the copies: they are never mutated after append, so
// sharing is safe.
func (s *Session) Clone() *Session {
	dup := *s
	if s.EndTime != nil {
		v := *s.EndTime
		dup.EndTime = &v
	}
	if s.PreFatigue != nil {
		v := *s.PreFatigue
		dup.PreFatigue = &v
	}
	if s.PostFatigue != nil {
		v := *s.PostFatigue
		dup.PostFatigue = &v
	}
	dup.SensorData = make([]Sample, len(s.SensorData))
	copy(dup.SensorData, s.SensorData)
	dup.QuizResponses = make([]QuizResponse, len(s.QuizResponses))
	copy(dup.QuizResponses, s.QuizResponses)
	return &dup
}
