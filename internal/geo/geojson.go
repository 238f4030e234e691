package geo

// GeoJSON point-feature structures, for the map-rendering consumer.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // lng, lat per the GeoJSON spec
}

// NewFeatureCollection creates an empty collection ready for appending.
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// NewPointFeature builds a point feature at c with the given properties.
func NewPointFeature(c Coordinate, props map[string]any) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: [2]float64{c.Lng, c.Lat},
		},
		Properties: props,
	}
}
