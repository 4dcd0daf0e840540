package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWallConfig_PixelSize(t *testing.T) {
	wall := DefaultWallConfig()
	wall.Width = 200

	pixelW, pixelH := wall.PixelSize()
	if math.Abs(pixelW-0.035) > 1e-12 {
		t.Errorf("Expected horizontal pixel size 0.035, got %f", pixelW)
	}
	if math.Abs(pixelH-0.07) > 1e-12 {
		t.Errorf("Expected vertical pixel size 0.07, got %f", pixelH)
	}
}

func TestWallConfig_WallPoint(t *testing.T) {
	wall := DefaultWallConfig()

	tests := []struct {
		name     string
		x, y     int
		expected mgl64.Vec3
	}{
		{"top-left corner", 0, 0, mgl64.Vec3{-3.5, 3.5, 10}},
		{"center", 50, 50, mgl64.Vec3{0, 0, 10}},
		{"last pixel", 99, 99, mgl64.Vec3{3.43, -3.43, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wall.WallPoint(tt.x, tt.y)
			if !got.ApproxEqualThreshold(tt.expected, 1e-9) {
				t.Errorf("WallPoint(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestWallConfig_Direction(t *testing.T) {
	wall := DefaultWallConfig()

	center := wall.Direction(50, 50)
	if !center.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("Expected center direction (0,0,1), got %v", center)
	}

	for _, p := range [][2]int{{0, 0}, {13, 77}, {99, 0}} {
		d := wall.Direction(p[0], p[1])
		if math.Abs(d.Len()-1) > 1e-9 {
			t.Errorf("Direction(%d, %d) is not unit length: %f", p[0], p[1], d.Len())
		}
	}
}

func TestWallConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(w *WallConfig)
		expectErr bool
	}{
		{"default", func(w *WallConfig) {}, false},
		{"zero width", func(w *WallConfig) { w.Width = 0 }, true},
		{"negative height", func(w *WallConfig) { w.Height = -1 }, true},
		{"zero wall size", func(w *WallConfig) { w.WallSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wall := DefaultWallConfig()
			tt.modify(&wall)
			err := wall.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error, got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
