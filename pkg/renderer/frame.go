package renderer

import "image"

// Packed 0x00RRGGBB pixel values written by the raytracer
const (
	HitColor  uint32 = 0x00FF0000
	MissColor uint32 = 0
)

// Frame is a packed XRGB pixel buffer stored row-major
type Frame struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// Bounds returns the pixel rectangle covered by the frame
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Set writes the packed color for pixel (x, y)
func (f *Frame) Set(x, y int, c uint32) {
	f.Pix[y*f.Width+x] = c
}

// At returns the packed color of pixel (x, y)
func (f *Frame) At(x, y int) uint32 {
	return f.Pix[y*f.Width+x]
}

// RGBA converts the frame to an opaque RGBA image
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.CopyToRGBA(img)
	return img
}

// CopyToRGBA writes the frame into img, which must have the same size.
// The unused top byte of each packed pixel is ignored and alpha is always 0xFF.
func (f *Frame) CopyToRGBA(img *image.RGBA) {
	dst := img.Pix
	for i, c := range f.Pix {
		j := i * 4
		dst[j+0] = uint8(c >> 16)
		dst[j+1] = uint8(c >> 8)
		dst[j+2] = uint8(c)
		dst[j+3] = 0xFF
	}
}
