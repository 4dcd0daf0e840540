package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a unit sphere centered on its local origin. Transform maps object
// space to world space and must be invertible.
type Sphere struct {
	origin    mgl64.Vec3
	radius    float64
	transform mgl64.Mat4
	inverse   mgl64.Mat4
}

// NewSphere creates a unit sphere at the world origin
func NewSphere() *Sphere {
	return NewTransformedSphere(mgl64.Ident4())
}

// NewTransformedSphere creates a unit sphere placed in the world by transform
func NewTransformedSphere(transform mgl64.Mat4) *Sphere {
	return &Sphere{
		origin:    mgl64.Vec3{0, 0, 0},
		radius:    1.0,
		transform: transform,
		inverse:   transform.Inv(),
	}
}

// Origin returns the local-space center
func (s *Sphere) Origin() mgl64.Vec3 {
	return s.origin
}

// Radius returns the local-space radius
func (s *Sphere) Radius() float64 {
	return s.radius
}

// Transform returns the object to world matrix
func (s *Sphere) Transform() mgl64.Mat4 {
	return s.transform
}

// Intersect returns both crossings of ray with the sphere surface, or nil on a miss.
// The ray is brought into object space and its direction is not renormalized, so
// t is measured in units of the object-space direction.
func (s *Sphere) Intersect(ray core.Ray) []core.Intersection {
	local := ray.Transform(s.inverse)

	// Vector from sphere center to ray origin
	sphereToRay := local.Origin.Sub(s.origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := local.Direction.Dot(local.Direction)
	b := 2.0 * local.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - s.radius*s.radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	return []core.Intersection{
		core.NewIntersection(t1, s),
		core.NewIntersection(t2, s),
	}
}
