package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/avikram/sat2intel/internal/regions"
)

func TestCentroidAtImageCenterMapsToMidpoint(t *testing.T) {
	b := Bounds{
		NorthWest: Coordinate{Lat: 10.0, Lng: 20.0},
		SouthEast: Coordinate{Lat: 8.0, Lng: 24.0},
	}
	// Centroid (50, 50) in a 100x100 image.
	r := regions.Region{Box: regions.Rectangle{X: 40, Y: 40, W: 20, H: 20}}

	c, err := MapCentroid(r, 100, 100, b)
	if err != nil {
		t.Fatalf("MapCentroid failed: %v", err)
	}

	if math.Abs(c.Lat-9.0) > 1e-9 || math.Abs(c.Lng-22.0) > 1e-9 {
		t.Errorf("coordinate = (%.6f, %.6f), want midpoint (9, 22)", c.Lat, c.Lng)
	}
}

func TestKashmirScenario(t *testing.T) {
	// AOI top-left (34.5, 74.5), bottom-right (34.0, 75.0), 200x200 image,
	// centroid at pixel (100,100).
	b := Bounds{
		NorthWest: Coordinate{Lat: 34.5, Lng: 74.5},
		SouthEast: Coordinate{Lat: 34.0, Lng: 75.0},
	}
	r := regions.Region{Box: regions.Rectangle{X: 90, Y: 90, W: 20, H: 20}}

	c, err := MapCentroid(r, 200, 200, b)
	if err != nil {
		t.Fatalf("MapCentroid failed: %v", err)
	}

	if math.Abs(c.Lat-34.25) > 1e-9 || math.Abs(c.Lng-74.75) > 1e-9 {
		t.Errorf("coordinate = (%.6f, %.6f), want (34.25, 74.75)", c.Lat, c.Lng)
	}
}

func TestDegenerateBounds(t *testing.T) {
	r := regions.Region{Box: regions.Rectangle{X: 0, Y: 0, W: 10, H: 10}}
	valid := Bounds{
		NorthWest: Coordinate{Lat: 1, Lng: 0},
		SouthEast: Coordinate{Lat: 0, Lng: 1},
	}

	tests := []struct {
		name       string
		imgW, imgH int
		b          Bounds
	}{
		{"zero image width", 0, 100, valid},
		{"zero image height", 100, 0, valid},
		{"zero lat span", 100, 100, Bounds{NorthWest: Coordinate{Lat: 1, Lng: 0}, SouthEast: Coordinate{Lat: 1, Lng: 1}}},
		{"zero lng span", 100, 100, Bounds{NorthWest: Coordinate{Lat: 1, Lng: 1}, SouthEast: Coordinate{Lat: 0, Lng: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapCentroid(r, tt.imgW, tt.imgH, tt.b)
			if err == nil {
				t.Fatal("expected BoundsError, got nil")
			}
			if _, ok := err.(*BoundsError); !ok {
				t.Fatalf("expected *BoundsError, got %T", err)
			}
		})
	}
}

func TestPointFeatureEncoding(t *testing.T) {
	fc := NewFeatureCollection()
	fc.Features = append(fc.Features, NewPointFeature(Coordinate{Lat: 34.25, Lng: 74.75}, map[string]any{
		"level": "HIGH",
	}))

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["type"] != "FeatureCollection" {
		t.Errorf("type = %v, want FeatureCollection", decoded["type"])
	}

	// GeoJSON orders coordinates lng-first.
	coords := decoded["features"].([]any)[0].(map[string]any)["geometry"].(map[string]any)["coordinates"].([]any)
	if coords[0].(float64) != 74.75 || coords[1].(float64) != 34.25 {
		t.Errorf("coordinates = %v, want [74.75, 34.25]", coords)
	}
}
