package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecApproxEqual(a, b mgl64.Vec3) bool {
	tolerance := 1e-9
	return math.Abs(a.X()-b.X()) <= tolerance &&
		math.Abs(a.Y()-b.Y()) <= tolerance &&
		math.Abs(a.Z()-b.Z()) <= tolerance
}

func TestNewRay(t *testing.T) {
	origin := mgl64.Vec3{1, 2, 3}
	direction := mgl64.Vec3{4, 5, 6}

	ray := NewRay(origin, direction)

	if ray.Origin != origin {
		t.Errorf("Expected origin %v, got %v", origin, ray.Origin)
	}
	if ray.Direction != direction {
		t.Errorf("Expected direction %v, got %v", direction, ray.Direction)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(mgl64.Vec3{2, 3, 4}, mgl64.Vec3{1, 0, 0})

	tests := []struct {
		name     string
		t        float64
		expected mgl64.Vec3
	}{
		{"origin", 0, mgl64.Vec3{2, 3, 4}},
		{"one step forward", 1, mgl64.Vec3{3, 3, 4}},
		{"one step backward", -1, mgl64.Vec3{1, 3, 4}},
		{"fractional step", 2.5, mgl64.Vec3{4.5, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ray.At(tt.t)
			if !vecApproxEqual(got, tt.expected) {
				t.Errorf("At(%f) = %v, expected %v", tt.t, got, tt.expected)
			}
		})
	}
}

func TestRay_Transform(t *testing.T) {
	ray := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 0})

	tests := []struct {
		name              string
		matrix            mgl64.Mat4
		expectedOrigin    mgl64.Vec3
		expectedDirection mgl64.Vec3
	}{
		{
			name:              "translation moves origin only",
			matrix:            mgl64.Translate3D(3, 4, 5),
			expectedOrigin:    mgl64.Vec3{4, 6, 8},
			expectedDirection: mgl64.Vec3{0, 1, 0},
		},
		{
			name:              "scaling scales origin and direction",
			matrix:            mgl64.Scale3D(2, 3, 4),
			expectedOrigin:    mgl64.Vec3{2, 6, 12},
			expectedDirection: mgl64.Vec3{0, 3, 0},
		},
		{
			name:              "identity round trip",
			matrix:            mgl64.Ident4(),
			expectedOrigin:    mgl64.Vec3{1, 2, 3},
			expectedDirection: mgl64.Vec3{0, 1, 0},
		},
		{
			name:              "quarter turn about z",
			matrix:            mgl64.HomogRotate3DZ(math.Pi / 2),
			expectedOrigin:    mgl64.Vec3{-2, 1, 3},
			expectedDirection: mgl64.Vec3{-1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ray.Transform(tt.matrix)

			if !vecApproxEqual(got.Origin, tt.expectedOrigin) {
				t.Errorf("Expected origin %v, got %v", tt.expectedOrigin, got.Origin)
			}
			if !vecApproxEqual(got.Direction, tt.expectedDirection) {
				t.Errorf("Expected direction %v, got %v", tt.expectedDirection, got.Direction)
			}
		})
	}
}

func TestRay_TransformLeavesInputUntouched(t *testing.T) {
	ray := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 1, 0})

	_ = ray.Transform(mgl64.Translate3D(10, 10, 10))

	if ray.Origin != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Transform mutated the receiver: origin is now %v", ray.Origin)
	}
}

func TestRay_TransformThenInverse(t *testing.T) {
	ray := NewRay(mgl64.Vec3{-1, 0.5, 7}, mgl64.Vec3{0.2, -0.3, 0.9})
	m := mgl64.Translate3D(1, -2, 3).Mul4(mgl64.Scale3D(2, 0.5, 4))

	back := ray.Transform(m).Transform(m.Inv())

	if !vecApproxEqual(back.Origin, ray.Origin) {
		t.Errorf("Expected origin %v after round trip, got %v", ray.Origin, back.Origin)
	}
	if !vecApproxEqual(back.Direction, ray.Direction) {
		t.Errorf("Expected direction %v after round trip, got %v", ray.Direction, back.Direction)
	}
}
