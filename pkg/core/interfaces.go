package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Hittable is implemented by any primitive that a ray can be tested against.
// Intersect returns every parametric crossing of the ray with the primitive's
// surface, including those behind the ray origin. The result may be empty and
// carries no ordering guarantee; use Hit to pick the visible one.
type Hittable interface {
	Intersect(ray Ray) []Intersection
}
