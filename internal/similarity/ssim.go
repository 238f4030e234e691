package similarity

import (
	"fmt"
	"image"
)

// Stabilizing constants from the standard SSIM formulation, for an 8-bit
// dynamic range: C1 = (0.01*255)^2, C2 = (0.03*255)^2.
const (
	c1 = 6.5025
	c2 = 58.5225
)

// DimensionMismatchError reports two images that reached the analyzer with
// different dimensions. The normalizer guarantees matching sizes, so this
// indicates a broken caller.
type DimensionMismatchError struct {
	AW, AH, BW, BH int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("image dimensions do not match: %dx%d vs %dx%d", e.AW, e.AH, e.BW, e.BH)
}

// Map is a per-pixel difference map. Scores lie in [0,1]: 0 means the local
// neighborhoods are identical, 1 means maximally different.
type Map struct {
	W, H int
	Pix  []float64
}

// NewMap allocates a zeroed difference map.
func NewMap(w, h int) *Map {
	return &Map{W: w, H: h, Pix: make([]float64, w*h)}
}

// At returns the difference score at (x, y).
func (m *Map) At(x, y int) float64 {
	return m.Pix[y*m.W+x]
}

// Set stores the difference score at (x, y).
func (m *Map) Set(x, y int, v float64) {
	m.Pix[y*m.W+x] = v
}

// Mean returns the average difference score across the map.
func (m *Map) Mean() float64 {
	if len(m.Pix) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m.Pix {
		sum += v
	}
	return sum / float64(len(m.Pix))
}

// Compare computes a per-pixel structural difference map between two
// grayscale images of identical dimensions. Each pixel's score is derived
// from the SSIM of the window centered on it, attenuated by the normalized
// local mean shift: plain SSIM underweights uniform luminance changes, and
// for overhead imagery a uniform luminance change is exactly the change
// signal we are looking for.
//
// The map is symmetric in its arguments, and identical inputs produce an
// all-zero map.
func Compare(a, b *image.Gray, window int) (*Map, error) {
	aw, ah := a.Bounds().Dx(), a.Bounds().Dy()
	bw, bh := b.Bounds().Dx(), b.Bounds().Dy()
	if aw != bw || ah != bh {
		return nil, &DimensionMismatchError{AW: aw, AH: ah, BW: bw, BH: bh}
	}

	if window < 2 {
		window = 2
	}
	half := window / 2

	m := NewMap(aw, ah)

	for y := 0; y < ah; y++ {
		for x := 0; x < aw; x++ {
			// Window clamped to the image; shrinks at the borders.
			x0, x1 := max(0, x-half), min(aw-1, x+half)
			y0, y1 := max(0, y-half), min(ah-1, y+half)

			score := windowScore(a, b, x0, y0, x1, y1)

			diff := 1.0 - score
			if diff < 0 {
				diff = 0
			} else if diff > 1 {
				diff = 1
			}
			m.Set(x, y, diff)
		}
	}

	return m, nil
}

// windowScore computes the attenuated SSIM over an inclusive pixel window.
func windowScore(a, b *image.Gray, x0, y0, x1, y1 int) float64 {
	n := float64((x1 - x0 + 1) * (y1 - y0 + 1))

	var sumA, sumB float64
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			sumA += float64(a.GrayAt(x, y).Y)
			sumB += float64(b.GrayAt(x, y).Y)
		}
	}
	muA := sumA / n
	muB := sumB / n

	var varA, varB, cov float64
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			da := float64(a.GrayAt(x, y).Y) - muA
			db := float64(b.GrayAt(x, y).Y) - muB
			varA += da * da
			varB += db * db
			cov += da * db
		}
	}
	varA /= n
	varB /= n
	cov /= n

	luminance := (2*muA*muB + c1) / (muA*muA + muB*muB + c1)
	structure := (2*cov + c2) / (varA + varB + c2)
	ssim := luminance * structure

	meanShift := (muA - muB) / 255.0
	if meanShift < 0 {
		meanShift = -meanShift
	}

	return ssim * (1.0 - meanShift)
}
