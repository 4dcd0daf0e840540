package core

import "math"

// Intersection records a crossing between a ray and a primitive's surface
type Intersection struct {
	T      float64  // Signed parameter along the ray, negative is behind the origin
	Object Hittable // Primitive that produced the crossing
}

// NewIntersection creates a new intersection
func NewIntersection(t float64, object Hittable) Intersection {
	return Intersection{T: t, Object: object}
}

// Hit returns the intersection with the smallest strictly positive t.
// The scan does not rely on the input being sorted. It reports false when xs is
// empty or every t is zero, negative or not a number.
func Hit(xs []Intersection) (Intersection, bool) {
	tMin := math.MaxFloat64
	var hit Intersection
	found := false

	for _, x := range xs {
		if x.T > 0 && x.T < tMin {
			tMin = x.T
			hit = x
			found = true
		}
	}

	return hit, found
}
