// Package snapshot writes rendered frames to PNG files and object storage.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nfnt/resize"
)

// Upscale enlarges img by an integer factor with nearest-neighbour sampling so
// pixel edges stay sharp. Factors below 2 return img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.NearestNeighbor)
}

// EncodePNG writes img, upscaled by factor, as a PNG
func EncodePNG(w io.Writer, img image.Image, factor int) error {
	if err := png.Encode(w, Upscale(img, factor)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// PNGBytes returns the encoded PNG of img upscaled by factor
func PNGBytes(img image.Image, factor int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img, factor); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the snapshot name for a render taken at ts
func Filename(ts time.Time) string {
	return fmt.Sprintf("render_%s.png", ts.Format("20060102_150405"))
}

// Save writes data to dir/name, creating dir when needed, and returns the path
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("error saving PNG: %w", err)
	}
	return filename, nil
}
