// Package source loads satellite captures for the pipeline. Captures
// arrive either as plain raster files (PNG, JPEG) or as GeoPDF documents,
// which some imagery providers use for distribution; PDF captures are
// rendered to a raster at a configured DPI.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"

	"github.com/avikram/sat2intel/internal/imaging"
)

// Capture is one satellite pass, regardless of delivery format.
type Capture interface {
	Path() string
	Image() (image.Image, error)
}

// Open picks a capture implementation by file extension. dpi only applies
// to PDF captures.
func Open(path string, dpi int) Capture {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return &PDFCapture{path: path, dpi: dpi}
	}
	return &FileCapture{path: path}
}

// Load reads the capture at path into an in-memory image.
func Load(path string, dpi int) (image.Image, error) {
	return Open(path, dpi).Image()
}

// FileCapture is a raster capture file (PNG, JPEG).
type FileCapture struct {
	path string
}

func (c *FileCapture) Path() string { return c.path }

func (c *FileCapture) Image() (image.Image, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return imaging.Decode(f)
}

// PDFCapture is imagery delivered as a GeoPDF document; the first page is
// rendered at the configured DPI.
type PDFCapture struct {
	path string
	dpi  int
}

func (c *PDFCapture) Path() string { return c.path }

func (c *PDFCapture) Image() (image.Image, error) {
	doc, err := fitz.New(c.path)
	if err != nil {
		return nil, &imaging.FormatError{Err: err}
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, &imaging.FormatError{Err: fmt.Errorf("%s: document has no pages", c.path)}
	}

	img, err := doc.ImageDPI(0, float64(c.dpi))
	if err != nil {
		return nil, &imaging.FormatError{Err: err}
	}
	return img, nil
}

// FindLatest returns the newest capture file in dir, by modification time.
// Satellite passes drop files into the watch directory; the newest one is
// the current capture.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".png", ".jpg", ".jpeg", ".pdf"}
	var latestFile string
	var latestTime time.Time

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		isCapture := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(e.Name()), ext) {
				isCapture = true
				break
			}
		}
		if !isCapture {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, e.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no captures found in %s", dir)
	}

	return latestFile, nil
}
