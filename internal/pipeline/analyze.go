// Package pipeline orchestrates one analysis invocation: normalize the two
// captures, compute the structural difference map, extract anomaly regions,
// classify and geo-tag them, and assemble the ranked report. An invocation
// either returns a complete report or fails; partial results are never
// produced. The pipeline holds no state between calls, so any number of
// invocations may run concurrently.
package pipeline

import (
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avikram/sat2intel/internal/config"
	"github.com/avikram/sat2intel/internal/geo"
	"github.com/avikram/sat2intel/internal/imaging"
	"github.com/avikram/sat2intel/internal/regions"
	"github.com/avikram/sat2intel/internal/report"
	"github.com/avikram/sat2intel/internal/similarity"
	"github.com/avikram/sat2intel/internal/threat"
)

// Analyze compares a baseline capture against a newer capture of the same
// AOI and returns the ranked anomaly report.
func Analyze(before, after image.Image, aoi string, bounds geo.Bounds, cfg *config.Config) (*report.AnalysisReport, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	normA, normB, err := imaging.Normalize(before, after)
	if err != nil {
		return nil, err
	}

	diff, err := similarity.Compare(normA, normB, cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	found := regions.Extract(diff, cfg.DiffThreshold, cfg.MinRegionArea)

	// Classification and geo mapping read the same regions independently,
	// so they run in parallel.
	assessments := make([]threat.Assessment, len(found))
	coords := make([]geo.Coordinate, len(found))

	w := normA.Bounds().Dx()
	h := normA.Bounds().Dy()

	var g errgroup.Group
	g.Go(func() error {
		classifier := threat.NewClassifier()
		for i, r := range found {
			assessments[i] = classifier.Classify(r)
		}
		return nil
	})
	g.Go(func() error {
		for i, r := range found {
			c, err := geo.MapCentroid(r, w, h, bounds)
			if err != nil {
				return err
			}
			coords[i] = c
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	findings := make([]report.Finding, len(found))
	for i := range found {
		findings[i] = report.Finding{
			Region:     found[i],
			Assessment: assessments[i],
			Coordinate: coords[i],
		}
	}

	return report.Assemble(aoi, time.Now(), bounds, 1.0-diff.Mean(), findings), nil
}
