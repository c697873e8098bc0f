// Package primitive implements ray intersection for the primitive kinds in
// spec.md §3/§4.1 (sphere, plane, cube, triangle mesh) as a tagged union,
// plus the mesh KD-tree from spec.md §4.2.
package primitive

import (
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Hit is the result of a successful intersection: {t, point, normal,
// material_ref, uv} per spec.md §4.1.
type Hit struct {
	T        float64
	Point    vecmath.Vec3
	Normal   vecmath.Vec3 // always oriented against the incoming ray (spec.md §3 invariant i)
	Material *material.Material
	U, V     float64
}

// faceForward flips outwardNormal to point against the ray direction,
// matching invariant (i) in spec.md §3.
func faceForward(rayDir, outwardNormal vecmath.Vec3) vecmath.Vec3 {
	if rayDir.Dot(outwardNormal) > 0 {
		return outwardNormal.Negate()
	}
	return outwardNormal
}
