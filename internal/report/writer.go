package report

import (
	"encoding/json"
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	"gopkg.in/yaml.v3"

	"github.com/avikram/sat2intel/internal/geo"
)

// Write serializes a report to a YAML file.
func Write(r *AnalysisReport, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a report from a YAML file.
func Read(path string) (*AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r AnalysisReport
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WriteGeoJSON exports the report's anomalies as a GeoJSON
// FeatureCollection of points for the map overlay.
func WriteGeoJSON(r *AnalysisReport, path string) error {
	fc := geo.NewFeatureCollection()
	for _, f := range r.Findings {
		fc.Features = append(fc.Features, geo.NewPointFeature(f.Coordinate, map[string]any{
			"region_id":  f.Region.ID,
			"area_px":    f.Region.Area,
			"level":      string(f.Assessment.Level),
			"risk_score": f.Assessment.Risk,
		}))
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteQR writes a PNG QR code encoding a geo: URI for the top-ranked
// anomaly, for handing coordinates to field units. Fails if the report has
// no findings.
func WriteQR(r *AnalysisReport, path string) error {
	if len(r.Findings) == 0 {
		return fmt.Errorf("report has no findings to encode")
	}

	top := r.Findings[0]
	uri := fmt.Sprintf("geo:%.6f,%.6f", top.Coordinate.Lat, top.Coordinate.Lng)
	return qrcode.WriteFile(uri, qrcode.Medium, 256, path)
}
