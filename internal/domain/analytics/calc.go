package analytics

import "math"

// OccupancyRate returns occupied/total as a percentage rounded to one
// decimal. A ward with no beds reports 0, not NaN.
func OccupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*1000) / 10
}

// UtilizationScore is the room load heuristic shown on the dashboard:
// occupancy rate plus ten points per distinct clinical need, capped at 100.
func UtilizationScore(occupancyRate float64, distinctNeeds int) float64 {
	score := occupancyRate + 10*float64(distinctNeeds)
	if score > 100 {
		return 100
	}
	return math.Round(score*10) / 10
}
