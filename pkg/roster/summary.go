package roster

import (
	"math"

	"github.com/arnavshah/duty-roster-go/pkg/models"
)

// FairnessScore returns a percentage (0-100) representing how evenly
// FTE-normalised hours are spread. 100% is perfectly fair (standard deviation 0).
func FairnessScore(hours map[string]float64) float64 {
	if len(hours) == 0 {
		return 100.0
	}

	var sum float64
	for _, h := range hours {
		sum += h
	}
	if sum == 0 {
		return 100.0 // nobody worked, nobody is behind
	}

	mean := sum / float64(len(hours))

	var varianceSum float64
	for _, h := range hours {
		diff := h - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(hours)))

	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return math.Round(score*100) / 100
}

// AssignedStaff returns how many distinct staff members appear anywhere in the roster.
func AssignedStaff(r *models.Roster) int {
	seen := make(map[string]bool)
	for _, d := range r.Days {
		for _, a := range d.Shifts {
			for _, name := range a.Staff {
				seen[name] = true
			}
		}
	}
	return len(seen)
}
