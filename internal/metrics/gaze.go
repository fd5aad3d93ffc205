package metrics

import (
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// calculateGazeOnObjects is the fraction of samples whose gaze rests on
// an actual target: the object is present and not the "empty" sentinel.
func calculateGazeOnObjects(samples []models.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	onObject := 0
	for _, s := range samples {
		if obj := gazeObjectOf(s); obj != "" && obj != EmptyGazeObject {
			onObject++
		}
	}

	return float64(onObject) / float64(len(samples))
}

// countObjectSwitches counts consecutive-sample gaze-object changes,
// including transitions to and from the empty sentinel or an absent
// gaze. The first sample sets the baseline and is not itself a switch.
// Shared with the interaction-density feature.
func countObjectSwitches(samples []models.Sample) int {
	if len(samples) < 2 {
		return 0
	}

	switches := 0
	prevObject := gazeObjectOf(samples[0])

	for i := 1; i < len(samples); i++ {
		currObject := gazeObjectOf(samples[i])
		if currObject != prevObject {
			switches++
		}
		prevObject = currObject
	}

	return switches
}

// calculateMeanGazeDwell is the mean dwell duration per distinct gaze
// object in milliseconds. Elapsed time between consecutive object
// changes is accumulated against the object just left; runs on an
// absent gaze accumulate nothing, and the trailing run is open-ended so
// it is not counted. Objects that never accumulated time are excluded
// from the average.
func calculateMeanGazeDwell(samples []models.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	dwell := make(map[string]float64)
	prevObject := ""
	runStart := samples[0].Timestamp

	for _, s := range samples {
		currObject := gazeObjectOf(s)
		if currObject != prevObject {
			if prevObject != "" {
				dwell[prevObject] += float64(s.Timestamp - runStart)
			}
			runStart = s.Timestamp
		}
		prevObject = currObject
	}

	var sum float64
	count := 0
	for _, d := range dwell {
		if d > 0 {
			sum += d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// calculateBlankGazeRatio is the fraction of the sample time-span spent
// in dwell runs on blank space: the empty sentinel or an absent gaze.
// Runs are accumulated the same way as in calculateMeanGazeDwell, with
// the first sample's object as the baseline.
func calculateBlankGazeRatio(samples []models.Sample) float64 {
	if len(samples) < 2 {
		return 0
	}

	var blankTime float64
	prevObject := gazeObjectOf(samples[0])
	runStart := samples[0].Timestamp

	for i := 1; i < len(samples); i++ {
		currObject := gazeObjectOf(samples[i])
		if currObject != prevObject {
			if prevObject == "" || prevObject == EmptyGazeObject {
				blankTime += float64(samples[i].Timestamp - runStart)
			}
			runStart = samples[i].Timestamp
		}
		prevObject = currObject
	}

	totalTime := float64(samples[len(samples)-1].Timestamp - samples[0].Timestamp)
	if totalTime <= 0 {
		return 0
	}
	return blankTime / totalTime
}
