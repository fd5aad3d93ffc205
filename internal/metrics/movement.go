package metrics

import (
	"math"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// calculateMovementVelocity is the total planar distance traveled
// divided by the session duration in seconds. The duration comes from
// the session's start/end bounds, not the sample time-span.
func calculateMovementVelocity(samples []models.Sample, durationSec float64) float64 {
	if len(samples) < 2 || durationSec == 0 {
		return 0
	}

	var totalDistance float64
	for i := 1; i < len(samples); i++ {
		prev := positionOf(samples[i-1])
		curr := positionOf(samples[i])
		totalDistance += math.Hypot(curr.X-prev.X, curr.Y-prev.Y)
	}

	return totalDistance / durationSec
}

// countMovementStarts counts stationary-to-moving transitions, where a
// step is "moving" when its position delta exceeds the movement
// threshold. The state initializes as stationary. Shared with the
// interaction-density feature.
func countMovementStarts(samples []models.Sample) int {
	if len(samples) < 2 {
		return 0
	}

	starts := 0
	wasStationary := true

	for i := 1; i < len(samples); i++ {
		prev := positionOf(samples[i-1])
		curr := positionOf(samples[i])
		distance := math.Hypot(curr.X-prev.X, curr.Y-prev.Y)

		isMoving := distance > movementThreshold
		if isMoving && wasStationary {
			starts++
		}
		wasStationary = !isMoving
	}

	return starts
}

// calculateQuizItemDistance would report the mean distance between the
// participant and the active quiz item. Quiz item world coordinates are
// not part of the sample stream yet, so the feature is fixed at zero
// until the client supplies them.
func calculateQuizItemDistance(samples []models.Sample) float64 {
	return 0
}

// calculatePositionVariance is the combined 2-D population variance of
// the position coordinates: mean-centered squared deviations on both
// axes summed, divided by N.
func calculatePositionVariance(samples []models.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	var meanX, meanY float64
	for _, s := range samples {
		pos := positionOf(s)
		meanX += pos.X
		meanY += pos.Y
	}
	n := float64(len(samples))
	meanX /= n
	meanY /= n

	var variance float64
	for _, s := range samples {
		pos := positionOf(s)
		variance += (pos.X-meanX)*(pos.X-meanX) + (pos.Y-meanY)*(pos.Y-meanY)
	}

	return variance / n
}
