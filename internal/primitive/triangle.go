package primitive

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Triangle is a mesh triangle: three vertex positions plus a precomputed
// unit face normal, and optionally per-vertex normals for smooth shading
// (see SPEC_FULL.md's mesh smoothing supplement).
type Triangle struct {
	V0, V1, V2 vecmath.Vec3
	FaceNormal vecmath.Vec3

	HasVertexNormals       bool
	N0, N1, N2             vecmath.Vec3
}

// triangleEpsilon guards against both the near-parallel-ray case and
// degenerate (zero-area) triangles in the Möller-Trumbore test.
const triangleEpsilon = 1e-9

// BoundingBox returns the triangle's AABB, used by the KD-tree build.
func (tr *Triangle) BoundingBox() geom.AABB {
	return geom.NewAABBFromPoints(tr.V0, tr.V1, tr.V2)
}

// intersectTriangle implements Möller-Trumbore per spec.md §4.1: "reject
// back-face if desired (core accepts both sides). Returns barycentric
// (u,v) when needed for mesh uv; face normal = precomputed unit normal,
// flipped toward ray." A zero-area triangle yields a near-zero
// determinant and is silently skipped (spec.md §4.8).
func (tr *Triangle) intersect(ray geom.Ray, tMin, tMax float64) (t, u, v float64, ok bool) {
	edge1 := tr.V1.Sub(tr.V0)
	edge2 := tr.V2.Sub(tr.V0)
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if math.Abs(det) < triangleEpsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det
	s := ray.Origin.Sub(tr.V0)
	u = invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(edge1)
	v = invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = invDet * edge2.Dot(q)
	if t <= tMin || t > tMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// shadingNormal returns the interpolated vertex normal when the owning
// mesh has smoothing enabled and vertex normals available, otherwise the
// flat face normal (spec.md §4.1's default).
func (tr *Triangle) shadingNormal(u, v float64, smooth bool) vecmath.Vec3 {
	if smooth && tr.HasVertexNormals {
		w := 1 - u - v
		n := tr.N0.Multiply(w).Add(tr.N1.Multiply(u)).Add(tr.N2.Multiply(v))
		return n.Normalize()
	}
	return tr.FaceNormal
}
