package primitive

import (
	"fmt"
	"math"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/vecmath"
	"github.com/corvidlabs/rtrace/internal/xform"
)

// Kind tags the variant held by a Primitive. Per spec.md §9 ("Tagged
// variants over inheritance... implement all of these as tagged unions
// with an explicit match; do not introduce dynamic dispatch unless needed
// for mesh storage"), Intersect dispatches on Kind with a plain switch
// rather than through an interface.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindCube
	KindMesh
)

// Primitive is a tagged union over the four primitive kinds. Only the
// fields relevant to Kind are populated.
type Primitive struct {
	Kind     Kind
	Material material.Material

	Sphere *Sphere
	Plane  *Plane
	Cube   *Cube
	Mesh   *Mesh
}

// Sphere per spec.md §3: center, radius (>0).
type Sphere struct {
	Center vecmath.Vec3
	Radius float64
}

// Plane per spec.md §3: infinite plane, point + unit normal, excluded from
// scene-bounds calculations.
type Plane struct {
	Point  vecmath.Vec3
	Normal vecmath.Vec3
}

// Cube per spec.md §3: center + (w,h,d) size, intersected as an AABB.
type Cube struct {
	Center vecmath.Vec3
	Size   vecmath.Vec3 // (w, h, d)
}

// NewSpherePrimitive constructs a sphere primitive with its material.
func NewSpherePrimitive(center vecmath.Vec3, radius float64, mat material.Material) (*Primitive, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("invalid scene: sphere radius must be > 0, got %v", radius)
	}
	return &Primitive{Kind: KindSphere, Material: mat, Sphere: &Sphere{Center: center, Radius: radius}}, nil
}

// NewPlanePrimitive constructs a plane primitive with its material.
func NewPlanePrimitive(point, normal vecmath.Vec3, mat material.Material) (*Primitive, error) {
	if normal.Length() < 1e-12 {
		return nil, fmt.Errorf("invalid scene: plane normal must not be zero-length")
	}
	return &Primitive{Kind: KindPlane, Material: mat, Plane: &Plane{Point: point, Normal: normal.Normalize()}}, nil
}

// NewCubePrimitive constructs a cube primitive with its material.
func NewCubePrimitive(center, size vecmath.Vec3, mat material.Material) (*Primitive, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("invalid scene: cube must have positive (w,h,d), got %v", size)
	}
	return &Primitive{Kind: KindCube, Material: mat, Cube: &Cube{Center: center, Size: size}}, nil
}

// ApplyTransform bakes a composed transform into the primitive's natural
// parameters, per spec.md §3 and §9 ("The source pre-bakes transforms into
// the primitive's natural parameters... forbids shear"). Mesh transforms
// are handled separately by Mesh.ApplyTransform since they rebuild the
// KD-tree.
func (p *Primitive) ApplyTransform(t xform.Transform) error {
	switch p.Kind {
	case KindSphere:
		scale, ok := t.UniformScale()
		if !ok {
			return &xform.Error{Reason: "sphere requires a uniform scale (no shear, no anisotropy)"}
		}
		p.Sphere.Center = t.ApplyPoint(p.Sphere.Center)
		p.Sphere.Radius *= scale
		if p.Sphere.Radius <= 0 {
			return fmt.Errorf("invalid scene: transform collapsed sphere radius to <= 0")
		}
		return nil
	case KindPlane:
		if !t.NoShear() {
			return &xform.Error{Reason: "plane transform must not introduce shear"}
		}
		p.Plane.Point = t.ApplyPoint(p.Plane.Point)
		normal, ok := t.ApplyNormal(p.Plane.Normal)
		if !ok {
			return &xform.Error{Reason: "plane transform is singular"}
		}
		p.Plane.Normal = normal
		return nil
	case KindCube:
		if _, _, _, ok := t.AxisAlignedScale(); !ok {
			return &xform.Error{Reason: "cube transform must be axis-aligned (scale and/or 90-degree rotations only)"}
		}
		p.Cube.Center = t.ApplyPoint(p.Cube.Center)
		// The linear part is a signed axis permutation times a scale, so it
		// carries each (w,h,d) extent onto the world axis it now lies along.
		size := t.ApplyVector(p.Cube.Size)
		p.Cube.Size = vecmath.NewVec3(math.Abs(size.X), math.Abs(size.Y), math.Abs(size.Z))
		return nil
	case KindMesh:
		return p.Mesh.ApplyTransform(t)
	}
	return nil
}

// BoundingBox returns the primitive's AABB. Planes, being infinite, return
// a degenerate-but-valid large box; callers (the scene's broad-phase index)
// exclude planes explicitly per spec.md §3, so this is only a fallback.
func (p *Primitive) BoundingBox() geom.AABB {
	switch p.Kind {
	case KindSphere:
		r := vecmath.NewVec3(p.Sphere.Radius, p.Sphere.Radius, p.Sphere.Radius)
		return geom.NewAABB(p.Sphere.Center.Sub(r), p.Sphere.Center.Add(r))
	case KindCube:
		half := p.Cube.Size.Multiply(0.5)
		return geom.NewAABB(p.Cube.Center.Sub(half), p.Cube.Center.Add(half))
	case KindMesh:
		return p.Mesh.Bounds
	default:
		const big = 1e6
		return geom.NewAABB(vecmath.NewVec3(-big, -big, -big), vecmath.NewVec3(big, big, big))
	}
}

// Intersect dispatches to the per-kind intersection routine. A zero
// denominator, non-positive radius, or degenerate triangle silently yields
// no hit per spec.md §4.8 — none of these routines returns an error.
func (p *Primitive) Intersect(ray geom.Ray, tMin, tMax float64) (Hit, bool) {
	switch p.Kind {
	case KindSphere:
		return intersectSphere(p.Sphere, &p.Material, ray, tMin, tMax)
	case KindPlane:
		return intersectPlane(p.Plane, &p.Material, ray, tMin, tMax)
	case KindCube:
		return intersectCube(p.Cube, &p.Material, ray, tMin, tMax)
	case KindMesh:
		return p.Mesh.Intersect(ray, tMin, tMax, &p.Material)
	}
	return Hit{}, false
}
