package primitive

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

const planeEpsilon = 1e-8

// intersectPlane implements spec.md §4.1: "t = ((point - origin)·n) /
// (direction·n), reject |denom| < eps or t <= t_min... uv = projection
// onto two orthonormal in-plane axes derived deterministically from n."
func intersectPlane(pl *Plane, mat *material.Material, ray geom.Ray, tMin, tMax float64) (Hit, bool) {
	denom := ray.Direction.Dot(pl.Normal)
	if math.Abs(denom) < planeEpsilon {
		return Hit{}, false
	}
	t := pl.Point.Sub(ray.Origin).Dot(pl.Normal) / denom
	if t <= tMin || t > tMax {
		return Hit{}, false
	}
	point := ray.At(t)
	u, v := planeUV(pl, point)
	return Hit{
		T:        t,
		Point:    point,
		Normal:   faceForward(ray.Direction, pl.Normal),
		Material: mat,
		U:        u,
		V:        v,
	}, true
}

func planeUV(pl *Plane, point vecmath.Vec3) (float64, float64) {
	axisU, axisV, _ := vecmath.OrthonormalBasis(pl.Normal)
	rel := point.Sub(pl.Point)
	return rel.Dot(axisU), rel.Dot(axisV)
}
