package geo

import (
	"fmt"

	"github.com/avikram/sat2intel/internal/regions"
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Bounds is the geographic extent of an area of interest, given as its
// top-left (north-west) and bottom-right (south-east) corners.
type Bounds struct {
	NorthWest Coordinate `yaml:"north_west" json:"north_west"`
	SouthEast Coordinate `yaml:"south_east" json:"south_east"`
}

// BoundsError reports a degenerate AOI: zero extent in either pixel or
// geographic space.
type BoundsError struct {
	Reason string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("degenerate AOI bounds: %s", e.Reason)
}

// Validate rejects a bounding box with zero geographic extent on either
// axis.
func (b Bounds) Validate() error {
	if b.NorthWest.Lat == b.SouthEast.Lat || b.NorthWest.Lng == b.SouthEast.Lng {
		return &BoundsError{Reason: "zero geographic span"}
	}
	return nil
}

// MapCentroid converts a region's pixel-space centroid into a geographic
// coordinate by linear interpolation along each axis independently. No
// projection correction is applied; the AOI is treated as a flat rectangle.
func MapCentroid(r regions.Region, imgW, imgH int, b Bounds) (Coordinate, error) {
	if imgW <= 0 || imgH <= 0 {
		return Coordinate{}, &BoundsError{Reason: fmt.Sprintf("image extent %dx%d", imgW, imgH)}
	}
	if err := b.Validate(); err != nil {
		return Coordinate{}, err
	}

	latSpan := b.NorthWest.Lat - b.SouthEast.Lat
	lngSpan := b.SouthEast.Lng - b.NorthWest.Lng

	cx, cy := r.Box.Centroid()

	return Coordinate{
		Lat: b.NorthWest.Lat - (cy/float64(imgH))*latSpan,
		Lng: b.NorthWest.Lng + (cx/float64(imgW))*lngSpan,
	}, nil
}
