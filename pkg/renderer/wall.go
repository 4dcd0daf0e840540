package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// WallConfig describes the projection wall that per-pixel rays are aimed at.
// The wall is a square of WallSize units centered on the z axis at WallZ.
type WallConfig struct {
	Width    int        // Frame width in pixels
	Height   int        // Frame height in pixels
	WallZ    float64    // Distance of the wall along +z
	WallSize float64    // Edge length of the wall in world units
	Eye      mgl64.Vec3 // Origin shared by every ray
}

// DefaultWallConfig returns the 100x100 setup looking at a unit sphere from z=-5
func DefaultWallConfig() WallConfig {
	return WallConfig{
		Width:    100,
		Height:   100,
		WallZ:    10.0,
		WallSize: 7.0,
		Eye:      mgl64.Vec3{0, 0, -5},
	}
}

// Validate checks that the wall can produce rays
func (w WallConfig) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.WallSize <= 0 {
		return fmt.Errorf("wall size must be positive, got %f", w.WallSize)
	}
	return nil
}

// PixelSize returns the world-space size of one pixel horizontally and vertically
func (w WallConfig) PixelSize() (float64, float64) {
	return w.WallSize / float64(w.Width), w.WallSize / float64(w.Height)
}

// WallPoint returns the world-space point on the wall for pixel (x, y).
// Pixel (0, 0) is the top-left corner.
func (w WallConfig) WallPoint(x, y int) mgl64.Vec3 {
	pixelW, pixelH := w.PixelSize()
	half := w.WallSize / 2

	worldX := -half + pixelW*float64(x)
	worldY := half - pixelH*float64(y)

	return mgl64.Vec3{worldX, worldY, w.WallZ}
}

// Direction returns the unit direction from the eye to pixel (x, y) on the wall
func (w WallConfig) Direction(x, y int) mgl64.Vec3 {
	return w.WallPoint(x, y).Sub(w.Eye).Normalize()
}
