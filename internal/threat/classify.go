package threat

import (
	"github.com/avikram/sat2intel/internal/regions"
)

// Level is the coarse threat grade of an anomaly.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Rank orders levels so aggregates can pick the highest one present.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	}
	return 0
}

// Assessment is the classifier's verdict for a single region.
type Assessment struct {
	Level Level   `yaml:"level" json:"level"`
	Risk  float64 `yaml:"risk_score" json:"risk_score"`
}

// Classification thresholds. A region the size of a large structure with a
// high-confidence difference signal grades HIGH; anything with either a
// substantial footprint or a strong signal grades MEDIUM; the rest of what
// survives the extractor's noise floor grades LOW.
const (
	HighAreaPx      = 2500 // ~50x50 px, large structure
	HighIntensity   = 0.6
	MediumAreaPx    = 400 // ~20x20 px, vehicle-group scale
	MediumIntensity = 0.45

	// Elongated regions at MEDIUM attributes (convoy-like signatures)
	// are promoted to HIGH.
	ConvoyAspectRatio = 4.0

	// Area above which the footprint contribution to the risk score
	// saturates.
	riskAreaCapPx = 10000
)

// Classifier grades regions by area and mean difference intensity. The
// zero value is not usable; NewClassifier installs the documented defaults,
// and every cutoff can be overridden for tuning.
type Classifier struct {
	HighArea        int
	HighIntensity   float64
	MediumArea      int
	MediumIntensity float64
	ConvoyAspect    float64
}

// NewClassifier creates a classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		HighArea:        HighAreaPx,
		HighIntensity:   HighIntensity,
		MediumArea:      MediumAreaPx,
		MediumIntensity: MediumIntensity,
		ConvoyAspect:    ConvoyAspectRatio,
	}
}

// Classify maps a region to a threat assessment. Pure function of the
// region's area, mean intensity and aspect ratio.
func (c *Classifier) Classify(r regions.Region) Assessment {
	return Assessment{
		Level: c.level(r),
		Risk:  c.Risk(r.Area, r.MeanIntensity),
	}
}

func (c *Classifier) level(r regions.Region) Level {
	switch {
	case r.Area >= c.HighArea && r.MeanIntensity >= c.HighIntensity:
		return LevelHigh
	case r.Area >= c.MediumArea || r.MeanIntensity >= c.MediumIntensity:
		if r.Box.AspectRatio() >= c.ConvoyAspect {
			return LevelHigh
		}
		return LevelMedium
	default:
		return LevelLow
	}
}

// Risk scores a region in [0,10]. Footprint and signal strength contribute
// equally; the score never decreases when either area or intensity grows.
func (c *Classifier) Risk(area int, meanIntensity float64) float64 {
	areaNorm := float64(area) / riskAreaCapPx
	if areaNorm > 1 {
		areaNorm = 1
	}

	intensity := meanIntensity
	if intensity < 0 {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}

	return 10 * (0.5*areaNorm + 0.5*intensity)
}
