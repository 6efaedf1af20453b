// Package mastery keeps each folder's mastery equal to the mean proficiency
// of the sets it currently holds.
package mastery

import (
	"math"
)

// Mean averages proficiencies to two decimals. It returns nil for an empty
// folder rather than dividing by zero.
func Mean(proficiencies []float64) *float64 {
	if len(proficiencies) == 0 {
		return nil
	}
	var sum float64
	for _, p := range proficiencies {
		sum += p
	}
	mean := math.Round(sum/float64(len(proficiencies))*100) / 100
	return &mean
}

// Band buckets a proficiency or mastery score for display.
func Band(score *float64) string {
	if score == nil {
		return "none"
	}
	switch s := *score; {
	case s >= 80:
		return "strong"
	case s >= 60:
		return "good"
	case s >= 40:
		return "fair"
	default:
		return "weak"
	}
}
