package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// MockHittable implements core.Hittable for testing
type MockHittable struct {
	intersectFn func(ray core.Ray) []core.Intersection
}

func (m *MockHittable) Intersect(ray core.Ray) []core.Intersection {
	return m.intersectFn(ray)
}

func TestRaytracer_TracePixel(t *testing.T) {
	rt := NewRaytracer(geometry.NewSphere(), DefaultWallConfig())

	tests := []struct {
		name      string
		x, y      int
		expectHit bool
	}{
		{"center", 50, 50, true},
		{"top-left corner", 0, 0, false},
		{"bottom-right corner", 99, 99, false},
		{"just inside the left edge", 10, 50, true},
		{"outside the left edge", 5, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rt.TracePixel(tt.x, tt.y); got != tt.expectHit {
				t.Errorf("TracePixel(%d, %d) = %t, expected %t", tt.x, tt.y, got, tt.expectHit)
			}
		})
	}
}

func TestRaytracer_RenderFrame_UnitSphere(t *testing.T) {
	wall := DefaultWallConfig()
	rt := NewRaytracer(geometry.NewSphere(), wall)
	frame := NewFrame(wall.Width, wall.Height)

	stats := rt.RenderFrame(frame)

	if stats.TotalPixels != 100*100 {
		t.Errorf("Expected 10000 pixels, got %d", stats.TotalPixels)
	}

	// The silhouette is a disc of radius ~3.06 on a 7x7 wall, about 60% of the frame
	if stats.Coverage() < 0.55 || stats.Coverage() > 0.65 {
		t.Errorf("Expected coverage around 0.6, got %f", stats.Coverage())
	}

	hits := 0
	for _, c := range frame.Pix {
		switch c {
		case HitColor:
			hits++
		case MissColor:
		default:
			t.Fatalf("Unexpected pixel value %#x", c)
		}
	}
	if hits != stats.HitPixels {
		t.Errorf("Stats report %d hits, frame has %d", stats.HitPixels, hits)
	}
}

func TestRaytracer_RenderFrame_Transformed(t *testing.T) {
	wall := DefaultWallConfig()
	unit := NewRaytracer(geometry.NewSphere(), wall).RenderFrame(NewFrame(wall.Width, wall.Height))

	tests := []struct {
		name   string
		matrix mgl64.Mat4
		check  func(t *testing.T, stats RenderStats)
	}{
		{
			name:   "translated out of view",
			matrix: mgl64.Translate3D(50, 0, 0),
			check: func(t *testing.T, stats RenderStats) {
				if stats.HitPixels != 0 {
					t.Errorf("Expected no hits, got %d", stats.HitPixels)
				}
			},
		},
		{
			name:   "shrunk",
			matrix: mgl64.Scale3D(0.5, 0.5, 0.5),
			check: func(t *testing.T, stats RenderStats) {
				if stats.HitPixels >= unit.HitPixels {
					t.Errorf("Expected fewer hits than %d, got %d", unit.HitPixels, stats.HitPixels)
				}
			},
		},
		{
			name:   "squashed along y",
			matrix: mgl64.Scale3D(1, 0.5, 1),
			check: func(t *testing.T, stats RenderStats) {
				if stats.HitPixels == 0 || stats.HitPixels >= unit.HitPixels {
					t.Errorf("Expected between 1 and %d hits, got %d", unit.HitPixels-1, stats.HitPixels)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewRaytracer(geometry.NewTransformedSphere(tt.matrix), wall)
			tt.check(t, rt.RenderFrame(NewFrame(wall.Width, wall.Height)))
		})
	}
}

func TestRaytracer_RenderBounds_OnlyTouchesBounds(t *testing.T) {
	wall := DefaultWallConfig()
	calls := 0
	mock := &MockHittable{intersectFn: func(ray core.Ray) []core.Intersection {
		calls++
		if ray.Origin != wall.Eye {
			t.Errorf("Expected ray origin %v, got %v", wall.Eye, ray.Origin)
		}
		return []core.Intersection{{T: 1}}
	}}
	rt := NewRaytracer(mock, wall)
	frame := NewFrame(wall.Width, wall.Height)

	stats := rt.RenderBounds(image.Rect(40, 40, 60, 60), frame)

	if calls != 20*20 {
		t.Errorf("Expected 400 intersect calls, got %d", calls)
	}
	if stats.HitPixels != 400 || stats.TotalPixels != 400 {
		t.Errorf("Expected 400/400 hits, got %+v", stats)
	}
	if frame.At(0, 0) != MissColor || frame.At(50, 50) != HitColor {
		t.Errorf("Pixels outside bounds were written or inside were not")
	}
}

func TestRaytracer_NegativeOnlyIsMiss(t *testing.T) {
	wall := DefaultWallConfig()
	wall.Width, wall.Height = 4, 4
	mock := &MockHittable{intersectFn: func(ray core.Ray) []core.Intersection {
		return []core.Intersection{{T: -2}, {T: -1}}
	}}

	stats := NewRaytracer(mock, wall).RenderFrame(NewFrame(4, 4))
	if stats.HitPixels != 0 {
		t.Errorf("Expected no visible hits, got %d", stats.HitPixels)
	}
}
