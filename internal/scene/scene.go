// Package scene holds the scene graph: primitives, lights, global settings,
// and the broad-phase spatial index over finite primitives (spec.md §3/§6).
package scene

import (
	"math"

	"github.com/mwindels/rtreego"

	"github.com/corvidlabs/rtrace/internal/camera"
	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/light"
	"github.com/corvidlabs/rtrace/internal/primitive"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Fog is the optional atmospheric compositing configuration (spec.md §3).
type Fog struct {
	Color        vecmath.Color
	Density      float64
	Start, End   float64
}

// Outline is the optional screen-space edge-detection post-pass config.
type Outline struct {
	Enabled        bool
	DepthWeight    float64
	NormalWeight   float64
	Threshold      float64
	Color          vecmath.Color
	Thickness      float64
	Use8Neighbors  bool
}

// AmbientIllumination is the scene-wide ambient term (spec.md §3).
type AmbientIllumination struct {
	Color     vecmath.Color
	Intensity float64
}

// Settings bundles the scene-wide, non-geometric configuration.
type Settings struct {
	Ambient         AmbientIllumination
	BackgroundColor vecmath.Color
	Fog             *Fog
	Outline         *Outline
}

// Scene is the fully validated, immutable scene graph handed to the
// renderer. It is built once (NewScene) and never mutated afterward
// (spec.md §5: "the scene, including the KD-tree, is constructed once
// before rendering and is thereafter immutable").
type Scene struct {
	Camera     *camera.Camera
	Primitives []*primitive.Primitive
	Lights     []*light.Light
	Settings   Settings

	// finitePrims excludes planes (spec.md §3: planes are "excluded from
	// scene-bounds calculations"); broadIndex is the rtreego broad-phase
	// index over exactly those primitives, grounded on
	// other_examples/MWindels-distributed-raytracer__tracer.go's
	// Objs.SearchCondition pattern.
	finitePrims []*primitive.Primitive
	planePrims  []*primitive.Primitive
	broadIndex  *rtreego.Rtree
}

const (
	rtreeDim         = 3
	rtreeMinChildren = 4
	rtreeMaxChildren = 16
	rtreeBoxEpsilon  = 1e-6
	raySegmentCap    = 1e6 // finite stand-in for +Inf when building the broad-phase query box
)

// primSpatial adapts a Primitive's AABB to rtreego.Spatial so it can be
// inserted into the broad-phase index; the precise geometric test still
// runs against the primitive itself once it is a candidate.
type primSpatial struct {
	prim  *primitive.Primitive
	index int
	rect  *rtreego.Rect
}

func (s *primSpatial) Bounds() *rtreego.Rect { return s.rect }

func aabbToRect(b geom.AABB) (*rtreego.Rect, error) {
	size := b.Size()
	return rtreego.NewRect(
		rtreego.Point{b.Min.X - rtreeBoxEpsilon, b.Min.Y - rtreeBoxEpsilon, b.Min.Z - rtreeBoxEpsilon},
		[]float64{size.X + 2*rtreeBoxEpsilon, size.Y + 2*rtreeBoxEpsilon, size.Z + 2*rtreeBoxEpsilon},
	)
}

// NewScene validates and assembles a scene graph. Primitives and lights
// must already be built (transforms applied) by the caller; NewScene's
// only remaining job is partitioning finite vs. infinite primitives and
// building the broad-phase index.
func NewScene(cam *camera.Camera, prims []*primitive.Primitive, lights []*light.Light, settings Settings) (*Scene, error) {
	if cam == nil {
		return nil, &InvalidSceneError{Reason: "scene has no camera"}
	}

	s := &Scene{Camera: cam, Primitives: prims, Lights: lights, Settings: settings}

	tree := rtreego.NewTree(rtreeDim, rtreeMinChildren, rtreeMaxChildren)
	for i, p := range prims {
		if p.Kind == primitive.KindPlane {
			s.planePrims = append(s.planePrims, p)
			continue
		}
		rect, err := aabbToRect(p.BoundingBox())
		if err != nil {
			return nil, &InvalidSceneError{Reason: "primitive has a degenerate bounding box", Err: err}
		}
		tree.Insert(&primSpatial{prim: p, index: i, rect: rect})
		s.finitePrims = append(s.finitePrims, p)
	}
	s.broadIndex = tree

	return s, nil
}

// Intersect finds the closest hit across every primitive: plane primitives
// are tested directly (they have no useful bounding box), finite
// primitives are narrowed first through the broad-phase index.
func (s *Scene) Intersect(ray geom.Ray, tMin, tMax float64) (primitive.Hit, bool) {
	var closest primitive.Hit
	found := false
	best := tMax

	for _, p := range s.planePrims {
		if hit, ok := p.Intersect(ray, tMin, best); ok {
			closest, found, best = hit, true, hit.T
		}
	}

	queryRect := s.raySegmentRect(ray, tMin, best)
	if queryRect != nil {
		for _, candidate := range s.broadIndex.SearchIntersect(queryRect) {
			p := candidate.(*primSpatial).prim
			if hit, ok := p.Intersect(ray, tMin, best); ok {
				closest, found, best = hit, true, hit.T
			}
		}
	}

	return closest, found
}

// raySegmentRect builds a conservative world-space bounding box over the
// ray's [tMin,tMax] segment (clamped to a finite cap when tMax is
// unbounded) for the broad-phase query.
func (s *Scene) raySegmentRect(ray geom.Ray, tMin, tMax float64) *rtreego.Rect {
	if math.IsInf(tMax, 1) || tMax > raySegmentCap {
		tMax = raySegmentCap
	}
	if tMax <= tMin {
		return nil
	}
	a := ray.At(tMin)
	b := ray.At(tMax)
	box := geom.NewAABBFromPoints(a, b)
	rect, err := aabbToRect(box)
	if err != nil {
		return nil
	}
	return rect
}

// Bounds returns the union AABB of every finite primitive, used by callers
// that need overall scene extent (e.g. default camera framing, out of
// scope here but kept available for collaborators).
func (s *Scene) Bounds() geom.AABB {
	b := geom.EmptyAABB()
	for _, p := range s.finitePrims {
		b = b.Union(p.BoundingBox())
	}
	return b
}
