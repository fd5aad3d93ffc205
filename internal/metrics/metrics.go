package metrics

import (
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

const (
	// EmptyGazeObject is the sentinel the client reports when the view
	// rests on blank space.
	EmptyGazeObject = "empty"

	// Rotation delta magnitudes below this count as stationary.
	rotationThreshold = 0.1
	// Position delta distances above this count as moving.
	movementThreshold = 1.0
)

// Calculate computes all thirteen behavioral features from a session's
// sample sequence. Samples are consumed in arrival order, which the
// client guarantees to be a close proxy for temporal order. duration is
// the externally supplied session length in milliseconds (endTime -
// startTime), not the sample time-span.
//
// Every feature tolerates short or partially malformed input: fewer
// than two samples, or samples missing position/rotation/gaze
// sub-objects, yield the documented zero/neutral values instead of an
// error.
func Calculate(samples []models.Sample, duration int64) models.MetricsResult {
	durationSec := float64(duration) / 1000

	return models.MetricsResult{
		F1:  calculateRotationalVelocity(samples),
		F2:  calculateRotationDirectionChanges(samples),
		F3:  calculateStationaryTimeRatio(samples),
		F4:  calculateMovementVelocity(samples, durationSec),
		F5:  countMovementStarts(samples),
		F6:  calculateQuizItemDistance(samples),
		F7:  calculatePositionVariance(samples),
		F8:  calculateGazeOnObjects(samples),
		F9:  countObjectSwitches(samples),
		F10: calculateMeanGazeDwell(samples),
		F11: calculateBlankGazeRatio(samples),
		F12: calculateBehaviorEntropy(samples),
		F13: calculateInteractionDensity(samples, durationSec),
	}
}

// Accuracy is the percentage of correct quiz responses, 0 when no
// responses were recorded.
func Accuracy(responses []models.QuizResponse) float64 {
	if len(responses) == 0 {
		return 0
	}

	correct := 0
	for _, r := range responses {
		if r.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(responses)) * 100
}

// positionOf normalizes a missing position sub-object to the origin.
func positionOf(s models.Sample) models.Vec2 {
	if s.Position == nil {
		return models.Vec2{}
	}
	return *s.Position
}

// rotationOf normalizes a missing rotation sub-object to a zero delta.
func rotationOf(s models.Sample) models.Vec2 {
	if s.Rotation == nil {
		return models.Vec2{}
	}
	return *s.Rotation
}

// gazeObjectOf returns the gaze target identifier, or "" when the gaze
// sub-object is absent or carries no object. The "empty" sentinel is a
// present target and passes through unchanged.
func gazeObjectOf(s models.Sample) string {
	if s.Gaze == nil {
		return ""
	}
	return s.Gaze.Object
}
