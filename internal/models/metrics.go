package models

// RotationStats is the mean/standard-deviation pair reported for the
// rotational speed feature.
type RotationStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// MetricsResult is the fixed record of the thirteen behavioral features
// computed from one session's sample sequence.
//
//	f1  rotational speed (mean, sample std dev)
//	f2  rotation direction reversals
//	f3  stationary-time ratio
//	f4  movement velocity (distance / duration)
//	f5  movement starts (stationary -> moving transitions)
//	f6  mean distance from the quiz item (not yet available, always 0)
//	f7  position variance
//	f8  gaze-on-object ratio
//	f9  gaze-object switches
//	f10 mean gaze dwell per object (ms)
//	f11 blank-space gaze-time ratio
//	f12 behavior entropy (bits)
//	f13 interaction density (events / second)
type MetricsResult struct {
	F1  RotationStats `json:"f1"`
	F2  int           `json:"f2"`
	F3  float64       `json:"f3"`
	F4  float64       `json:"f4"`
	F5  int           `json:"f5"`
	F6  float64       `json:"f6"`
	F7  float64       `json:"f7"`
	F8  float64       `json:"f8"`
	F9  int           `json:"f9"`
	F10 float64       `json:"f10"`
	F11 float64       `json:"f11"`
	F12 float64       `json:"f12"`
	F13 float64       `json:"f13"`
}

// SessionResults is the response shape of the results endpoints.
// TotalDuration is in milliseconds, Accuracy a percentage.
type SessionResults struct {
	Accuracy      float64       `json:"accuracy"`
	Metrics       MetricsResult `json:"metrics"`
	TotalDuration int64         `json:"totalDuration"`
}
