package primitive

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// intersectCube implements spec.md §4.1: "slab intersection; normal is the
// axis of the entry slab, signed against direction. uv derived from the hit
// coordinates on the entry face."
func intersectCube(c *Cube, mat *material.Material, ray geom.Ray, tMin, tMax float64) (Hit, bool) {
	half := c.Size.Multiply(0.5)
	box := geom.NewAABB(c.Center.Sub(half), c.Center.Add(half))

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	bmin := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	bmax := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	near, far := tMin, tMax
	entryAxis := -1
	entrySign := 1.0

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < 1e-12 {
			if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
				return Hit{}, false
			}
			continue
		}
		invD := 1.0 / dir[axis]
		t1 := (bmin[axis] - origin[axis]) * invD
		t2 := (bmax[axis] - origin[axis]) * invD
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > near {
			near = t1
			entryAxis = axis
			entrySign = sign
		}
		far = math.Min(far, t2)
		if near > far {
			return Hit{}, false
		}
	}

	if entryAxis == -1 || near <= tMin || near > tMax {
		return Hit{}, false
	}

	point := ray.At(near)
	var outwardNormal vecmath.Vec3
	switch entryAxis {
	case 0:
		outwardNormal = vecmath.NewVec3(entrySign, 0, 0)
	case 1:
		outwardNormal = vecmath.NewVec3(0, entrySign, 0)
	default:
		outwardNormal = vecmath.NewVec3(0, 0, entrySign)
	}

	u, v := cubeFaceUV(c, point, entryAxis)
	return Hit{
		T:        near,
		Point:    point,
		Normal:   faceForward(ray.Direction, outwardNormal),
		Material: mat,
		U:        u,
		V:        v,
	}, true
}

// cubeFaceUV projects the hit point onto the two axes that span the
// entered face, relative to the cube's center.
func cubeFaceUV(c *Cube, point vecmath.Vec3, entryAxis int) (float64, float64) {
	rel := point.Sub(c.Center)
	switch entryAxis {
	case 0:
		return rel.Y, rel.Z
	case 1:
		return rel.X, rel.Z
	default:
		return rel.X, rel.Y
	}
}
