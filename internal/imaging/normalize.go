package imaging

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Decode reads an image from r in any registered format (PNG, JPEG).
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return img, nil
}

// Normalize reconciles two captures into grayscale images of identical
// dimensions. The larger image is downscaled to the smaller one's size;
// inputs are never upscaled, so interpolation cannot invent detail that
// would inflate difference scores. Inputs are not modified.
func Normalize(a, b image.Image) (*image.Gray, *image.Gray, error) {
	if a == nil || b == nil {
		return nil, nil, &FormatError{Err: errNilImage}
	}

	if err := checkDimensions(a); err != nil {
		return nil, nil, err
	}
	if err := checkDimensions(b); err != nil {
		return nil, nil, err
	}

	grayA := ToGrayscale(a)
	grayB := ToGrayscale(b)

	// Common size is the per-axis minimum of the two inputs.
	w := min(grayA.Bounds().Dx(), grayB.Bounds().Dx())
	h := min(grayA.Bounds().Dy(), grayB.Bounds().Dy())

	return scaleTo(grayA, w, h), scaleTo(grayB, w, h), nil
}

func checkDimensions(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return &DimensionError{Width: bounds.Dx(), Height: bounds.Dy()}
	}
	return nil
}

// ToGrayscale converts an image to 8-bit grayscale.
func ToGrayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// scaleTo downscales img to w x h. Images already at the target size are
// returned as-is.
func scaleTo(img *image.Gray, w, h int) *image.Gray {
	if img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		return img
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
