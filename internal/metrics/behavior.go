package metrics

import (
	"fmt"
	"math"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

// behaviorSignature buckets a sample into a discrete behavior class:
// position rounded to the nearest unit, rotation x rounded to the
// nearest unit, and the gaze object. An absent gaze folds into the
// empty sentinel here.
func behaviorSignature(s models.Sample) string {
	pos := positionOf(s)
	rot := rotationOf(s)
	obj := gazeObjectOf(s)
	if obj == "" {
		obj = EmptyGazeObject
	}

	return fmt.Sprintf("pos:%d-%d,rot:%d,gaze:%s",
		int(math.Round(pos.X)), int(math.Round(pos.Y)), int(math.Round(rot.X)), obj)
}

// calculateBehaviorEntropy is the Shannon entropy (base 2) of the
// behavior-signature frequency distribution: -sum(p * log2(p)). A
// session stuck in a single signature scores 0.
func calculateBehaviorEntropy(samples []models.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	counts := make(map[string]int)
	for _, s := range samples {
		counts[behaviorSignature(s)]++
	}

	total := float64(len(samples))
	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}

	return entropy
}

// calculateInteractionDensity is (gaze-object switches + movement
// starts + speech events) per second of session duration. No audio
// channel is modeled, so the speech term is always zero.
func calculateInteractionDensity(samples []models.Sample, durationSec float64) float64 {
	if durationSec == 0 {
		return 0
	}

	interactions := countObjectSwitches(samples) + countMovementStarts(samples)
	return float64(interactions) / durationSec
}
