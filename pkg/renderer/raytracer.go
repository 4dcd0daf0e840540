package renderer

import (
	"image"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Raytracer traces one ray per pixel against a single object
type Raytracer struct {
	object core.Hittable
	wall   WallConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(object core.Hittable, wall WallConfig) *Raytracer {
	return &Raytracer{
		object: object,
		wall:   wall,
	}
}

// Wall returns the projection the raytracer aims its rays at
func (rt *Raytracer) Wall() WallConfig {
	return rt.wall
}

// TracePixel reports whether the ray through pixel (x, y) has a visible hit
func (rt *Raytracer) TracePixel(x, y int) bool {
	ray := core.NewRay(rt.wall.Eye, rt.wall.Direction(x, y))
	_, ok := core.Hit(rt.object.Intersect(ray))
	return ok
}

// RenderBounds traces every pixel inside bounds and writes the result to frame.
// Distinct bounds touch distinct pixels, so concurrent calls on disjoint bounds are safe.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, frame *Frame) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	// One ray is reused for the whole region; only its direction changes per pixel
	ray := core.NewRay(rt.wall.Eye, mgl64.Vec3{})

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray.Direction = rt.wall.Direction(x, y)

			if _, ok := core.Hit(rt.object.Intersect(ray)); ok {
				frame.Set(x, y, HitColor)
				stats.HitPixels++
			} else {
				frame.Set(x, y, MissColor)
			}
		}
	}

	return stats
}

// RenderFrame traces the whole frame on the calling goroutine
func (rt *Raytracer) RenderFrame(frame *Frame) RenderStats {
	return rt.RenderBounds(frame.Bounds(), frame)
}
