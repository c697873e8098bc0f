package primitive

import (
	"fmt"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/xform"
)

// Mesh is triangle soup plus an owned KD-tree, per spec.md §3: "Mesh:
// triangle soup (array of triangles, each with 3 vertex positions and a
// precomputed face normal), plus an owned KD-tree." Smooth selects
// vertex-normal interpolation over flat shading (SPEC_FULL.md's mesh
// smoothing supplement, grounded on original_source/src/mesh.rs).
type Mesh struct {
	Triangles []Triangle
	Bounds    geom.AABB
	Smooth    bool

	tree *KDTree
}

// NewMesh builds a mesh and its KD-tree from a triangle soup.
func NewMesh(triangles []Triangle, smooth bool) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, fmt.Errorf("invalid scene: mesh has no triangles")
	}
	m := &Mesh{Triangles: triangles, Smooth: smooth}
	m.rebuild()
	return m, nil
}

// NewMeshPrimitive wraps a Mesh in a Primitive tagged as KindMesh.
func NewMeshPrimitive(triangles []Triangle, smooth bool, mat material.Material) (*Primitive, error) {
	mesh, err := NewMesh(triangles, smooth)
	if err != nil {
		return nil, err
	}
	return &Primitive{Kind: KindMesh, Material: mat, Mesh: mesh}, nil
}

func (m *Mesh) rebuild() {
	bounds := geom.EmptyAABB()
	for i := range m.Triangles {
		bounds = bounds.Union(m.Triangles[i].BoundingBox())
	}
	m.Bounds = bounds
	m.tree = Build(m.Triangles)
}

// ApplyTransform applies a composed affine transform to every vertex and
// normal, then rebuilds the KD-tree, per spec.md §3: "Meshes apply
// transforms to vertices and rebuild the KD-tree." Face and vertex normals
// go through the inverse-transpose so shading stays correct under
// non-uniform scale; a singular transform is rejected rather than silently
// producing garbage normals.
func (m *Mesh) ApplyTransform(t xform.Transform) error {
	for i := range m.Triangles {
		tr := &m.Triangles[i]
		tr.V0 = t.ApplyPoint(tr.V0)
		tr.V1 = t.ApplyPoint(tr.V1)
		tr.V2 = t.ApplyPoint(tr.V2)

		n, ok := t.ApplyNormal(tr.FaceNormal)
		if !ok {
			return &xform.Error{Reason: "mesh transform is singular"}
		}
		tr.FaceNormal = n

		if tr.HasVertexNormals {
			n0, ok0 := t.ApplyNormal(tr.N0)
			n1, ok1 := t.ApplyNormal(tr.N1)
			n2, ok2 := t.ApplyNormal(tr.N2)
			if !ok0 || !ok1 || !ok2 {
				return &xform.Error{Reason: "mesh transform is singular"}
			}
			tr.N0, tr.N1, tr.N2 = n0, n1, n2
		}
	}
	m.rebuild()
	return nil
}

// Intersect finds the closest triangle hit via the KD-tree, per spec.md
// §4.2: traversal visits near-side children first and prunes subtrees once
// their near distance exceeds the current best hit.
func (m *Mesh) Intersect(ray geom.Ray, tMin, tMax float64, mat *material.Material) (Hit, bool) {
	t, u, v, idx, ok := m.tree.Intersect(m.Triangles, ray, tMin, tMax, m.Smooth)
	if !ok {
		return Hit{}, false
	}
	tr := &m.Triangles[idx]
	normal := tr.shadingNormal(u, v, m.Smooth)
	return Hit{
		T:        t,
		Point:    ray.At(t),
		Normal:   faceForward(ray.Direction, normal),
		Material: mat,
		U:        u,
		V:        v,
	}, true
}

// BruteForceIntersect linearly scans every triangle, ignoring the KD-tree.
// It exists to verify KD-tree/brute-force equivalence (spec.md §4.2
// invariant ii, §8's "KD-tree equivalence" testable property) and is used
// only from tests.
func BruteForceIntersect(tris []Triangle, ray geom.Ray, tMin, tMax float64) (t, u, v float64, idx int32, ok bool) {
	best := tMax
	bestIdx := int32(-1)
	var bestU, bestV float64
	for i := range tris {
		ct, cu, cv, cok := tris[i].intersect(ray, tMin, best)
		if cok && ct < best {
			best, bestU, bestV, bestIdx = ct, cu, cv, int32(i)
		}
	}
	if bestIdx < 0 {
		return 0, 0, 0, -1, false
	}
	return best, bestU, bestV, bestIdx, true
}
