package similarity

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func randomGray(seed int64, w, h int) *image.Gray {
	r := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(r.Intn(256))})
		}
	}
	return img
}

func TestIdenticalInputsYieldZeroMap(t *testing.T) {
	img := randomGray(1, 64, 64)

	m, err := Compare(img, img, 8)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("Pix[%d] = %g, want exactly 0 for identical inputs", i, v)
		}
	}
}

func TestSymmetry(t *testing.T) {
	a := randomGray(2, 48, 32)
	b := randomGray(3, 48, 32)

	ab, err := Compare(a, b, 8)
	if err != nil {
		t.Fatalf("Compare(a,b) failed: %v", err)
	}
	ba, err := Compare(b, a, 8)
	if err != nil {
		t.Fatalf("Compare(b,a) failed: %v", err)
	}

	for i := range ab.Pix {
		if ab.Pix[i] != ba.Pix[i] {
			t.Fatalf("map not symmetric at index %d: %g vs %g", i, ab.Pix[i], ba.Pix[i])
		}
	}
}

func TestScoresStayInRange(t *testing.T) {
	a := randomGray(4, 40, 40)
	b := randomGray(5, 40, 40)

	m, err := Compare(a, b, 8)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	for i, v := range m.Pix {
		if v < 0 || v > 1 {
			t.Fatalf("Pix[%d] = %g out of [0,1]", i, v)
		}
	}
	t.Logf("mean difference: %.4f", m.Mean())
}

func TestDimensionMismatch(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 10, 10))
	b := image.NewGray(image.Rect(0, 0, 12, 10))

	_, err := Compare(a, b, 8)
	if err == nil {
		t.Fatal("expected DimensionMismatchError, got nil")
	}
	if _, ok := err.(*DimensionMismatchError); !ok {
		t.Fatalf("expected *DimensionMismatchError, got %T", err)
	}
}

func TestUniformLuminanceShiftIsDetected(t *testing.T) {
	// Plain SSIM scores a uniform 128->255 shift around 0.8; the attenuated
	// score must push the difference past typical thresholds.
	a := image.NewGray(image.Rect(0, 0, 32, 32))
	b := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			a.SetGray(x, y, color.Gray{Y: 128})
			b.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	m, err := Compare(a, b, 8)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	center := m.At(16, 16)
	if center <= 0.3 {
		t.Errorf("difference %g for a full luminance shift, want > 0.3", center)
	}
	t.Logf("uniform shift difference: %.4f", center)
}
