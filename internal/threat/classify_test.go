package threat

import (
	"testing"

	"github.com/avikram/sat2intel/internal/regions"
)

func region(area int, mean float64, box regions.Rectangle) regions.Region {
	return regions.Region{Box: box, Area: area, MeanIntensity: mean}
}

func TestLevelBands(t *testing.T) {
	c := NewClassifier()

	square := func(side int) regions.Rectangle {
		return regions.Rectangle{X: 0, Y: 0, W: side, H: side}
	}

	tests := []struct {
		name string
		r    regions.Region
		want Level
	}{
		{"large structure, strong signal", region(3000, 0.8, square(55)), LevelHigh},
		{"large structure, weak signal", region(3000, 0.35, square(55)), LevelMedium},
		{"vehicle-group footprint", region(500, 0.35, square(23)), LevelMedium},
		{"small but intense", region(50, 0.7, square(7)), LevelMedium},
		{"small and faint", region(50, 0.35, square(7)), LevelLow},
		{"convoy signature promoted", region(500, 0.5, regions.Rectangle{X: 0, Y: 0, W: 100, H: 5}), LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.r)
			if got.Level != tt.want {
				t.Errorf("level = %s, want %s (risk %.2f)", got.Level, tt.want, got.Risk)
			}
		})
	}
}

func TestRiskMonotonic(t *testing.T) {
	c := NewClassifier()

	areas := []int{0, 16, 100, 400, 2500, 10000, 20000}
	intensities := []float64{0, 0.1, 0.3, 0.45, 0.6, 0.8, 1.0}

	for ai := range areas {
		for ii := range intensities {
			risk := c.Risk(areas[ai], intensities[ii])
			if risk < 0 || risk > 10 {
				t.Fatalf("risk(%d, %g) = %g out of [0,10]", areas[ai], intensities[ii], risk)
			}
			if ai > 0 {
				prev := c.Risk(areas[ai-1], intensities[ii])
				if risk < prev {
					t.Errorf("risk decreased with area: %g -> %g", prev, risk)
				}
			}
			if ii > 0 {
				prev := c.Risk(areas[ai], intensities[ii-1])
				if risk < prev {
					t.Errorf("risk decreased with intensity: %g -> %g", prev, risk)
				}
			}
		}
	}
}

func TestLevelRank(t *testing.T) {
	if !(LevelHigh.Rank() > LevelMedium.Rank() && LevelMedium.Rank() > LevelLow.Rank()) {
		t.Error("level ordinal must be HIGH > MEDIUM > LOW")
	}
	if Level("").Rank() >= LevelLow.Rank() {
		t.Error("empty level must rank below LOW")
	}
}
