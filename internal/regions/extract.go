package regions

import (
	"sort"

	"github.com/avikram/sat2intel/internal/similarity"
)

// Rectangle is a pixel-space bounding box.
type Rectangle struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w"`
	H int `yaml:"h" json:"h"`
}

// Centroid returns the center of the box in pixel coordinates.
func (r Rectangle) Centroid() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

// AspectRatio returns the long side divided by the short side (always >= 1).
func (r Rectangle) AspectRatio() float64 {
	w, h := float64(r.W), float64(r.H)
	if w == 0 || h == 0 {
		return 1
	}
	if w > h {
		return w / h
	}
	return h / w
}

// Region is a connected cluster of above-threshold difference pixels.
type Region struct {
	ID            int       `yaml:"id" json:"id"`
	Box           Rectangle `yaml:"box" json:"box"`
	Area          int       `yaml:"area_px" json:"area_px"`
	MeanIntensity float64   `yaml:"mean_intensity" json:"mean_intensity"`
	MaxIntensity  float64   `yaml:"max_intensity" json:"max_intensity"`
}

// Extract binarizes the difference map at threshold and groups the
// above-threshold pixels into 8-connected components. Components smaller
// than minArea are dropped as sensor noise. The result is ordered by pixel
// area descending; ties break on the bounding box's top-left corner in
// row-major order, so identical maps always yield identical sequences.
func Extract(m *similarity.Map, threshold float64, minArea int) []Region {
	visited := make([]bool, m.W*m.H)

	var found []Region
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			idx := y*m.W + x
			if visited[idx] || m.At(x, y) < threshold {
				continue
			}
			r := flood(m, visited, x, y, threshold)
			if r.Area >= minArea {
				found = append(found, r)
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Area != found[j].Area {
			return found[i].Area > found[j].Area
		}
		if found[i].Box.Y != found[j].Box.Y {
			return found[i].Box.Y < found[j].Box.Y
		}
		return found[i].Box.X < found[j].Box.X
	})

	// IDs are assigned after ordering so they are stable rank labels.
	for i := range found {
		found[i].ID = i + 1
	}

	return found
}

// flood walks one 8-connected component with an explicit stack and
// accumulates its bounding box and intensity statistics.
func flood(m *similarity.Map, visited []bool, startX, startY int, threshold float64) Region {
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	area := 0
	sum := 0.0
	peak := 0.0

	type point struct{ x, y int }
	stack := []point{{startX, startY}}
	visited[startY*m.W+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := m.At(p.x, p.y)
		area++
		sum += v
		if v > peak {
			peak = v
		}

		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
					continue
				}
				idx := ny*m.W + nx
				if visited[idx] || m.At(nx, ny) < threshold {
					continue
				}
				visited[idx] = true
				stack = append(stack, point{nx, ny})
			}
		}
	}

	return Region{
		Box:           Rectangle{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1},
		Area:          area,
		MeanIntensity: sum / float64(area),
		MaxIntensity:  peak,
	}
}
