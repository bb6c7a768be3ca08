package analytics

import "testing"

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		occupied, total int
		want            float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{2, 3, 66.7},
		{1, 3, 33.3},
		{5, 60, 8.3},
		{24, 60, 40},
	}
	for _, tt := range tests {
		if got := OccupancyRate(tt.occupied, tt.total); got != tt.want {
			t.Errorf("OccupancyRate(%d, %d) = %v, want %v", tt.occupied, tt.total, got, tt.want)
		}
	}
}

func TestUtilizationScore(t *testing.T) {
	tests := []struct {
		rate  float64
		needs int
		want  float64
	}{
		{0, 0, 0},
		{50, 2, 70},
		{66.7, 2, 86.7},
		{95, 3, 100},
		{100, 0, 100},
	}
	for _, tt := range tests {
		if got := UtilizationScore(tt.rate, tt.needs); got != tt.want {
			t.Errorf("UtilizationScore(%v, %d) = %v, want %v", tt.rate, tt.needs, got, tt.want)
		}
	}
}
