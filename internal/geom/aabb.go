package geom

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max vecmath.Vec3
}

// NewAABB creates an AABB from explicit min/max corners.
func NewAABB(min, max vecmath.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the tightest AABB containing every point.
func NewAABBFromPoints(points ...vecmath.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = vecmath.NewVec3(math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z))
		max = vecmath.NewVec3(math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z))
	}
	return AABB{Min: min, Max: max}
}

// Hit performs the slab intersection test, clipping [tMin, tMax] to the
// interval where the ray is inside the box. The returned interval is only
// meaningful when ok is true.
func (b AABB) Hit(r Ray, tMin, tMax float64) (near, far float64, ok bool) {
	near, far = tMin, tMax
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	bmin := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	bmax := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < 1e-12 {
			if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
				return 0, 0, false
			}
			continue
		}
		invD := 1.0 / dir[axis]
		t1 := (bmin[axis] - origin[axis]) * invD
		t2 := (bmax[axis] - origin[axis]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		near = math.Max(near, t1)
		far = math.Min(far, t2)
		if near > far {
			return 0, 0, false
		}
	}
	return near, far, true
}

// Union returns the smallest AABB containing both inputs.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: vecmath.NewVec3(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)),
		Max: vecmath.NewVec3(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)),
	}
}

// Center returns the AABB's center point.
func (b AABB) Center() vecmath.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis.
func (b AABB) Size() vecmath.Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the AABB's surface area, used by the KD-tree SAH cost.
func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}
	return 2.0 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// LongestAxis returns 0, 1, or 2 for the axis (X, Y, Z) with the largest
// extent, used by the median-split KD-tree build policy.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// Axis returns the min/max extent of the box along the given axis (0=X,
// 1=Y, 2=Z).
func (b AABB) Axis(axis int) (min, max float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// Overlaps reports whether two AABBs share any volume, used by the KD-tree
// builder to decide which side(s) of a split a triangle belongs to.
func (b AABB) Overlaps(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Empty reports whether the box has negative volume along any axis (used as
// the identity element for repeated Union calls).
func (b AABB) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// EmptyAABB returns an AABB that is the identity element under Union.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: vecmath.NewVec3(inf, inf, inf), Max: vecmath.NewVec3(-inf, -inf, -inf)}
}
