package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avikram/sat2intel/internal/geo"
	"github.com/avikram/sat2intel/internal/regions"
	"github.com/avikram/sat2intel/internal/threat"
)

// Finding is one classified, geo-tagged anomaly.
type Finding struct {
	Region     regions.Region    `yaml:"region" json:"region"`
	Assessment threat.Assessment `yaml:"assessment" json:"assessment"`
	Coordinate geo.Coordinate    `yaml:"coordinate" json:"coordinate"`
}

// Summary holds the report's aggregate statistics.
type Summary struct {
	TotalRegions    int          `yaml:"total_regions" json:"total_regions"`
	HighestLevel    threat.Level `yaml:"highest_level,omitempty" json:"highest_level,omitempty"`
	SimilarityScore float64      `yaml:"similarity_score" json:"similarity_score"`
}

// AnalysisReport is the assembled output of one analysis invocation.
// Immutable after assembly.
type AnalysisReport struct {
	GeneratedAt time.Time  `yaml:"generated_at" json:"generated_at"`
	AOI         string     `yaml:"aoi" json:"aoi"`
	Bounds      geo.Bounds `yaml:"bounds" json:"bounds"`
	Findings    []Finding  `yaml:"findings" json:"findings"`
	Summary     Summary    `yaml:"summary" json:"summary"`
}

// Assemble ranks the findings by risk score descending and computes the
// summary statistics. The sort is stable, so findings with equal risk keep
// the extractor's area-descending order.
func Assemble(aoi string, at time.Time, bounds geo.Bounds, similarityScore float64, findings []Finding) *AnalysisReport {
	ranked := make([]Finding, len(findings))
	copy(ranked, findings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Assessment.Risk > ranked[j].Assessment.Risk
	})

	summary := Summary{
		TotalRegions:    len(ranked),
		SimilarityScore: similarityScore,
	}
	for _, f := range ranked {
		if f.Assessment.Level.Rank() > summary.HighestLevel.Rank() {
			summary.HighestLevel = f.Assessment.Level
		}
	}

	return &AnalysisReport{
		GeneratedAt: at,
		AOI:         aoi,
		Bounds:      bounds,
		Findings:    ranked,
		Summary:     summary,
	}
}

// TopRisk returns the highest risk score present, or 0 for an empty report.
func (r *AnalysisReport) TopRisk() float64 {
	if len(r.Findings) == 0 {
		return 0
	}
	return r.Findings[0].Assessment.Risk
}

// Text renders the report as a plain-text intelligence summary: a BLUF
// line, a detail block grouped by threat level, and a priority
// recommendation driven by the top risk score.
func (r *AnalysisReport) Text() string {
	var b strings.Builder

	n := len(r.Findings)
	fmt.Fprintf(&b, "BLUF: Analysis of AOI %q [NW %.4f,%.4f / SE %.4f,%.4f] identified %d anomalies.\n",
		r.AOI,
		r.Bounds.NorthWest.Lat, r.Bounds.NorthWest.Lng,
		r.Bounds.SouthEast.Lat, r.Bounds.SouthEast.Lng,
		n)

	b.WriteString("Detailed Analysis:\n")
	if n == 0 {
		b.WriteString("  * No significant changes detected; area remains stable.\n")
	} else {
		byLevel := map[threat.Level]int{}
		for _, f := range r.Findings {
			byLevel[f.Assessment.Level]++
		}
		for _, lvl := range []threat.Level{threat.LevelHigh, threat.LevelMedium, threat.LevelLow} {
			if c := byLevel[lvl]; c > 0 {
				fmt.Fprintf(&b, "  * %s threat level: %d region(s).\n", lvl, c)
			}
		}
		fmt.Fprintf(&b, "  * Overall similarity score %.2f indicates temporal change.\n", r.Summary.SimilarityScore)
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "  * Region %d: %dpx at (%.4f, %.4f), risk %.1f [%s]\n",
				f.Region.ID, f.Region.Area,
				f.Coordinate.Lat, f.Coordinate.Lng,
				f.Assessment.Risk, f.Assessment.Level)
		}
	}

	b.WriteString("Recommendation: ")
	switch top := r.TopRisk(); {
	case r.Summary.HighestLevel == threat.LevelHigh || top > 8.0:
		b.WriteString("HIGH PRIORITY: immediate review required.\n")
	case top > 5.0:
		b.WriteString("MEDIUM PRIORITY: monitor detected changes and correlate with other sources.\n")
	case n > 0:
		b.WriteString("LOW PRIORITY: log detections for trend analysis; continue monitoring.\n")
	default:
		b.WriteString("ROUTINE: no action required.\n")
	}

	return b.String()
}
