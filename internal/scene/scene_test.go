package scene

import (
	"math"
	"testing"

	"github.com/corvidlabs/rtrace/internal/camera"
	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/light"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/primitive"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

func testCamera(t *testing.T) *camera.Camera {
	t.Helper()
	c, err := camera.NewOrthoCamera(vecmath.NewVec3(0, 0, 10), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 6, 6, nil)
	if err != nil {
		t.Fatalf("NewOrthoCamera: %v", err)
	}
	return c
}

func TestNewScene_RejectsNilCamera(t *testing.T) {
	if _, err := NewScene(nil, nil, nil, Settings{}); err == nil {
		t.Fatalf("expected error for nil camera")
	}
}

func TestScene_IntersectSphere(t *testing.T) {
	sphere, err := primitive.NewSpherePrimitive(vecmath.Zero, 1, material.Material{})
	if err != nil {
		t.Fatalf("NewSpherePrimitive: %v", err)
	}
	s, err := NewScene(testCamera(t), []*primitive.Primitive{sphere}, nil, Settings{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	ray := geom.NewRay(vecmath.NewVec3(0, 0, 5), vecmath.NewVec3(0, 0, -1))
	hit, ok := s.Intersect(ray, geom.DefaultTMin, math.Inf(1))
	if !ok || math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("expected hit at t=4, got ok=%v t=%v", ok, hit.T)
	}
}

func TestScene_IntersectPicksClosest(t *testing.T) {
	near, _ := primitive.NewSpherePrimitive(vecmath.NewVec3(0, 0, 2), 1, material.Material{})
	far, _ := primitive.NewSpherePrimitive(vecmath.NewVec3(0, 0, -5), 1, material.Material{})
	s, err := NewScene(testCamera(t), []*primitive.Primitive{far, near}, nil, Settings{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	ray := geom.NewRay(vecmath.NewVec3(0, 0, 10), vecmath.NewVec3(0, 0, -1))
	hit, ok := s.Intersect(ray, geom.DefaultTMin, math.Inf(1))
	if !ok || math.Abs(hit.T-7) > 1e-9 {
		t.Fatalf("expected the nearer sphere's hit at t=7, got ok=%v t=%v", ok, hit.T)
	}
}

func TestScene_PlaneExcludedFromBroadIndexButStillHit(t *testing.T) {
	plane, err := primitive.NewPlanePrimitive(vecmath.Zero, vecmath.NewVec3(0, 1, 0), material.Material{})
	if err != nil {
		t.Fatalf("NewPlanePrimitive: %v", err)
	}
	s, err := NewScene(testCamera(t), []*primitive.Primitive{plane}, nil, Settings{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if len(s.finitePrims) != 0 {
		t.Errorf("expected plane to be excluded from the finite-primitive broad index")
	}
	ray := geom.NewRay(vecmath.NewVec3(0, 5, 0), vecmath.NewVec3(0, -1, 0))
	if _, ok := s.Intersect(ray, geom.DefaultTMin, math.Inf(1)); !ok {
		t.Errorf("expected plane to still be hit directly")
	}
}

func TestScene_IntersectMiss(t *testing.T) {
	sphere, _ := primitive.NewSpherePrimitive(vecmath.NewVec3(100, 100, 100), 1, material.Material{})
	s, err := NewScene(testCamera(t), []*primitive.Primitive{sphere}, []*light.Light{}, Settings{})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	ray := geom.NewRay(vecmath.NewVec3(0, 0, 5), vecmath.NewVec3(0, 0, -1))
	if _, ok := s.Intersect(ray, geom.DefaultTMin, math.Inf(1)); ok {
		t.Fatalf("expected no hit")
	}
}
