package imaging

import (
	"errors"
	"fmt"
)

var errNilImage = errors.New("nil image")

// FormatError reports an input image that could not be decoded.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unreadable image: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// DimensionError reports an image with unusable geometry (zero area).
type DimensionError struct {
	Width, Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("unusable image dimensions %dx%d", e.Width, e.Height)
}
