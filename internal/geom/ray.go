// Package geom holds the ray and axis-aligned bounding box types used by
// every intersection routine in the tracer.
package geom

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Epsilon constants named per spec.md §9: "Two magic numbers dominate:
// shadow-ray origin offset along normal (~1e-4) and intersection t_min
// (~1e-4)." Surfaced for testing, never for user configuration.
const (
	DefaultTMin        = 1e-4
	ShadowOriginOffset = 1e-4
)

// Ray is an origin plus a (nominally unit) direction, carrying its own valid
// t interval so intersection routines never need extra parameters for
// self-intersection epsilon or far clipping.
type Ray struct {
	Origin    vecmath.Vec3
	Direction vecmath.Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray with the default t interval [DefaultTMin, +Inf).
func NewRay(origin, direction vecmath.Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      DefaultTMin,
		TMax:      math.Inf(1),
	}
}

// NewRayTMax creates a ray with an explicit far clip, used for shadow rays
// where TMax is the distance to the light sample.
func NewRayTMax(origin, direction vecmath.Vec3, tMax float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      DefaultTMin,
		TMax:      tMax,
	}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) vecmath.Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
