package metrics

import (
	"math"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// calculateRotationalVelocity computes the mean and sample standard
// deviation of the per-step rotational speed. The rotation field is a
// 2-D pointer-delta proxy, not a true 3-axis orientation; speed is the
// Euclidean norm of its step delta over elapsed seconds. Steps with
// zero elapsed time are skipped.
func calculateRotationalVelocity(samples []models.Sample) models.RotationStats {
	if len(samples) < 2 {
		return models.RotationStats{}
	}

	var velocities []float64
	for i := 1; i < len(samples); i++ {
		dt := float64(samples[i].Timestamp-samples[i-1].Timestamp) / 1000
		if dt == 0 {
			continue
		}

		prev := rotationOf(samples[i-1])
		curr := rotationOf(samples[i])
		angleDelta := math.Hypot(curr.X-prev.X, curr.Y-prev.Y)
		velocities = append(velocities, angleDelta/dt)
	}

	if len(velocities) == 0 {
		return models.RotationStats{}
	}

	var sum float64
	for _, v := range velocities {
		sum += v
	}
	mean := sum / float64(len(velocities))

	// Sample standard deviation (Bessel's correction); a single valid
	// step yields stdDev 0 rather than a divide by zero.
	if len(velocities) < 2 {
		return models.RotationStats{Mean: mean}
	}

	var squares float64
	for _, v := range velocities {
		squares += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(squares / float64(len(velocities)-1))

	return models.RotationStats{Mean: mean, StdDev: stdDev}
}

// calculateRotationDirectionChanges counts the steps whose rotation
// delta strictly reverses sign on either axis relative to the previous
// step. The first step has no prior direction and never counts.
func calculateRotationDirectionChanges(samples []models.Sample) int {
	changes := 0
	hasPrev := false
	var prevDx, prevDy float64

	for i := 1; i < len(samples); i++ {
		prev := rotationOf(samples[i-1])
		curr := rotationOf(samples[i])
		dx := curr.X - prev.X
		dy := curr.Y - prev.Y

		if hasPrev && (prevDx*dx < 0 || prevDy*dy < 0) {
			changes++
		}

		prevDx, prevDy = dx, dy
		hasPrev = true
	}

	return changes
}

// calculateStationaryTimeRatio returns the fraction of the sample
// time-span spent with the rotation delta magnitude below the
// stationary threshold. Zero-elapsed steps still get the threshold
// comparison; they just contribute no time.
func calculateStationaryTimeRatio(samples []models.Sample) float64 {
	if len(samples) < 2 {
		return 0
	}

	var stationaryTime float64
	for i := 1; i < len(samples); i++ {
		prev := rotationOf(samples[i-1])
		curr := rotationOf(samples[i])
		angleDelta := math.Hypot(curr.X-prev.X, curr.Y-prev.Y)

		if angleDelta < rotationThreshold {
			stationaryTime += float64(samples[i].Timestamp - samples[i-1].Timestamp)
		}
	}

	totalTime := float64(samples[len(samples)-1].Timestamp - samples[0].Timestamp)
	if totalTime <= 0 {
		return 0
	}
	return stationaryTime / totalTime
}
