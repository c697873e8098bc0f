package shading

import (
	"math"
	"math/rand"
	"testing"

	"github.com/corvidlabs/rtrace/internal/camera"
	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/light"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/primitive"
	"github.com/corvidlabs/rtrace/internal/scene"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

func buildBasicScene(t *testing.T, reflectivity float64) *scene.Scene {
	t.Helper()
	cam, err := camera.NewOrthoCamera(vecmath.NewVec3(0, 0, 10), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 6, 6, nil)
	if err != nil {
		t.Fatalf("NewOrthoCamera: %v", err)
	}
	mat := material.Material{Color: vecmath.NewColor(1, 0.25, 0.25), Ambient: 0.1, Diffuse: 0.8, Specular: 0.4, Shininess: 32, Reflectivity: reflectivity}
	sphere, err := primitive.NewSpherePrimitive(vecmath.Zero, 1.5, mat)
	if err != nil {
		t.Fatalf("NewSpherePrimitive: %v", err)
	}
	l, err := light.NewPointLight(vecmath.NewVec3(3, 3, 5), vecmath.White, 1.0)
	if err != nil {
		t.Fatalf("NewPointLight: %v", err)
	}
	settings := scene.Settings{
		Ambient:         scene.AmbientIllumination{Color: vecmath.White, Intensity: 0.1},
		BackgroundColor: vecmath.NewColor(0, 0.067, 0.133),
	}
	s, err := scene.NewScene(cam, []*primitive.Primitive{sphere}, []*light.Light{l}, settings)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestShade_HitIsBetweenAmbientAndFull(t *testing.T) {
	s := buildBasicScene(t, 0)
	sh := NewShader(s, 10)
	rng := rand.New(rand.NewSource(1))

	ray := geom.NewRay(vecmath.NewVec3(0, 0, 10), vecmath.NewVec3(0, 0, -1))
	c := sh.Shade(ray, 0, rng)

	ambient := 0.1 * 0.1
	if c.R <= ambient*1.0 {
		t.Errorf("R = %v should be strictly brighter than ambient-only %v", c.R, ambient)
	}
	if c.R >= 1.0 {
		t.Errorf("R = %v should be strictly less than the material's base color 1.0", c.R)
	}
}

func TestShade_Miss_ReturnsBackground(t *testing.T) {
	s := buildBasicScene(t, 0)
	sh := NewShader(s, 10)
	rng := rand.New(rand.NewSource(1))

	ray := geom.NewRay(vecmath.NewVec3(100, 100, 10), vecmath.NewVec3(0, 0, -1))
	c := sh.Shade(ray, 0, rng)
	want := s.Settings.BackgroundColor
	if math.Abs(c.R-want.R) > 1e-12 || math.Abs(c.G-want.G) > 1e-12 || math.Abs(c.B-want.B) > 1e-12 {
		t.Errorf("miss color = %v, want background %v", c, want)
	}
}

func TestShade_ReflectionBudgetZeroMatchesNonReflective(t *testing.T) {
	reflective := buildBasicScene(t, 1.0)
	plain := buildBasicScene(t, 0.0)

	shReflective := NewShader(reflective, 0)
	shPlain := NewShader(plain, 0)

	ray := geom.NewRay(vecmath.NewVec3(0, 0, 10), vecmath.NewVec3(0, 0, -1))
	a := shReflective.Shade(ray, 0, rand.New(rand.NewSource(7)))
	b := shPlain.Shade(ray, 0, rand.New(rand.NewSource(7)))

	if math.Abs(a.R-b.R) > 1e-9 || math.Abs(a.G-b.G) > 1e-9 || math.Abs(a.B-b.B) > 1e-9 {
		t.Errorf("max_depth=0 should disable reflection: got %v vs %v", a, b)
	}
}

func TestApplyFog_MonotonicTowardFogColor(t *testing.T) {
	base := vecmath.NewColor(1, 0, 0)
	fogColor := vecmath.NewColor(0, 0, 1)
	fog := &scene.Fog{Color: fogColor, Start: 0, End: 10}

	prevDist := -1.0
	for _, density := range []float64{0.1, 0.5, 1.0, 2.0} {
		fog.Density = density
		c := applyFog(base, fog, 5)
		distToFog := math.Abs(c.R-fogColor.R) + math.Abs(c.B-fogColor.B)
		if prevDist >= 0 && distToFog > prevDist+1e-9 {
			t.Errorf("density %v: color moved away from fog color", density)
		}
		prevDist = distToFog
	}
}

func TestShade_ShadowOccludesLight(t *testing.T) {
	cam, err := camera.NewOrthoCamera(vecmath.NewVec3(0, 0, 10), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 10, 10, nil)
	if err != nil {
		t.Fatalf("NewOrthoCamera: %v", err)
	}
	mat := material.Material{Color: vecmath.White, Ambient: 0.1, Diffuse: 0.8}
	ground, err := primitive.NewPlanePrimitive(vecmath.NewVec3(0, -1, 0), vecmath.NewVec3(0, 1, 0), mat)
	if err != nil {
		t.Fatalf("NewPlanePrimitive: %v", err)
	}
	blocker, err := primitive.NewSpherePrimitive(vecmath.NewVec3(0, 2, 0), 1, mat)
	if err != nil {
		t.Fatalf("NewSpherePrimitive: %v", err)
	}
	l, err := light.NewPointLight(vecmath.NewVec3(0, 10, 0), vecmath.White, 1.0)
	if err != nil {
		t.Fatalf("NewPointLight: %v", err)
	}
	settings := scene.Settings{
		Ambient:         scene.AmbientIllumination{Color: vecmath.White, Intensity: 0.1},
		BackgroundColor: vecmath.Black,
	}

	withBlocker, err := scene.NewScene(cam, []*primitive.Primitive{ground, blocker}, []*light.Light{l}, settings)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	withoutBlocker, err := scene.NewScene(cam, []*primitive.Primitive{ground}, []*light.Light{l}, settings)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	// Primary ray originates below the blocker so it only ever hits the
	// ground; the blocker instead occludes the shadow ray back up to the
	// light, which sits directly overhead on the same vertical line.
	ray := geom.NewRay(vecmath.NewVec3(0, 0, 0), vecmath.NewVec3(0, -1, 0))
	shadowed := NewShader(withBlocker, 10).Shade(ray, 0, rand.New(rand.NewSource(1)))
	lit := NewShader(withoutBlocker, 10).Shade(ray, 0, rand.New(rand.NewSource(1)))

	if shadowed.R >= lit.R {
		t.Errorf("shadowed point (%v) should be dimmer than the unblocked point (%v)", shadowed.R, lit.R)
	}
}
