package primitive

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/material"
)

// intersectSphere implements the quadratic root test from spec.md §4.1:
// "choose smallest root > t_min. Normal = (point - center)/radius. uv =
// (0,0) (spheres ignore textures in the core)."
func intersectSphere(s *Sphere, mat *material.Material, ray geom.Ray, tMin, tMax float64) (Hit, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Hit{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root <= tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root > tMax {
			return Hit{}, false
		}
	}

	point := ray.At(root)
	outwardNormal := point.Sub(s.Center).Multiply(1.0 / s.Radius)
	return Hit{
		T:        root,
		Point:    point,
		Normal:   faceForward(ray.Direction, outwardNormal),
		Material: mat,
		U:        0,
		V:        0,
	}, true
}
