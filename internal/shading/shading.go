// Package shading implements closest-hit dispatch, Phong illumination with
// hard/soft shadows, recursive mirror reflection, fog, and background
// resolution from spec.md §4.4/§4.6.
package shading

import (
	"math"
	"math/rand"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/light"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/scene"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Shader evaluates the shading pipeline against a fixed, immutable scene.
// A Shader has no mutable state of its own, so a single instance is shared
// read-only across every render worker (spec.md §5).
type Shader struct {
	Scene    *scene.Scene
	MaxDepth int
}

// NewShader constructs a Shader. maxDepth <= 0 disables reflection entirely
// (spec.md §8's reflection-budget testable property).
func NewShader(s *scene.Scene, maxDepth int) *Shader {
	return &Shader{Scene: s, MaxDepth: maxDepth}
}

// Shade evaluates spec.md §4.4's eight-step pipeline for a single ray.
func (sh *Shader) Shade(ray geom.Ray, depth int, rng *rand.Rand) vecmath.Color {
	hit, ok := sh.Scene.Intersect(ray, geom.DefaultTMin, math.Inf(1))
	if !ok {
		return sh.background(ray)
	}

	eff := hit.Material.EffectiveAt(hit.U, hit.V)
	point := hit.Point
	normal := hit.Normal
	view := ray.Direction.Negate().Normalize()

	settings := sh.Scene.Settings
	c := eff.Color.Scale(eff.Ambient).Mul(settings.Ambient.Color.Scale(settings.Ambient.Intensity))

	for _, l := range sh.Scene.Lights {
		c = c.Add(sh.lightContribution(l, point, normal, view, &eff, rng))
	}

	if eff.Reflectivity > 0 && depth < sh.MaxDepth {
		reflectedDir := ray.Direction.Reflect(normal)
		reflectedRay := geom.NewRay(point.Add(normal.Multiply(geom.ShadowOriginOffset)), reflectedDir)
		reflected := sh.Shade(reflectedRay, depth+1, rng)
		c = c.Scale(1 - eff.Reflectivity).Add(reflected.Scale(eff.Reflectivity))
	}

	if settings.Fog != nil {
		c = applyFog(c, settings.Fog, hit.T)
	}

	return c
}

// lightContribution accumulates the Lambertian and Phong-specular terms
// for one light, averaging occlusion over its sample positions (a point
// light has exactly one; a disk light has light.AreaSamples).
func (sh *Shader) lightContribution(l *light.Light, point, normal, view vecmath.Vec3, mat *material.Material, rng *rand.Rand) vecmath.Color {
	samples := l.SampleCount()
	diffuseSum := vecmath.Black
	specularSum := vecmath.Black

	for i := 0; i < samples; i++ {
		lp := l.SamplePosition(point, i, rng)
		toLight := lp.Sub(point)
		dist := toLight.Length()
		if dist < 1e-12 {
			continue
		}
		ldir := toLight.Multiply(1 / dist)

		visible := sh.visible(point, normal, ldir, dist)
		if visible <= 0 {
			continue
		}

		ndotl := normal.Dot(ldir)
		if ndotl <= 0 {
			continue
		}
		diffuseSum = diffuseSum.Add(l.Color.Scale(l.Intensity * visible * ndotl))

		reflected := ldir.Negate().Reflect(normal)
		rdotv := math.Max(0, reflected.Dot(view))
		specPow := math.Pow(rdotv, mat.Shininess)
		specularSum = specularSum.Add(l.Color.Scale(l.Intensity * visible * specPow))
	}

	diffuse := diffuseSum.Scale(mat.Diffuse).Mul(mat.Color).Scale(1 / float64(samples))
	specular := specularSum.Scale(mat.Specular).Scale(1 / float64(samples))
	return diffuse.Add(specular)
}

// visible casts a shadow ray from the offset hit point toward a light
// sample and returns 1 if unoccluded, 0 if occluded.
func (sh *Shader) visible(point, normal, ldir vecmath.Vec3, dist float64) float64 {
	origin := point.Add(normal.Multiply(geom.ShadowOriginOffset))
	shadowRay := geom.NewRayTMax(origin, ldir, dist-geom.ShadowOriginOffset)
	if _, ok := sh.Scene.Intersect(shadowRay, geom.DefaultTMin, shadowRay.TMax); ok {
		return 0
	}
	return 1
}

// background resolves a missed ray to the orthographic world-grid (when
// configured) or the scene's flat background color, per spec.md §4.6.
func (sh *Shader) background(ray geom.Ray) vecmath.Color {
	gridColor, on, ok := sh.Scene.Camera.GridBackground(ray)
	if ok && on {
		return gridColor
	}
	return sh.Scene.Settings.BackgroundColor
}

// applyFog blends c toward fog.Color based on hit distance, per spec.md
// §4.4 step 7: a linear ramp over [start,end] feeds an exponential-in-factor
// blend so fog thickens smoothly rather than linearly with distance.
func applyFog(c vecmath.Color, fog *scene.Fog, dist float64) vecmath.Color {
	span := fog.End - fog.Start
	var linear float64
	if span > 0 {
		linear = (dist - fog.Start) / span
	}
	linear = math.Max(0, math.Min(1, linear))
	factor := 1 - math.Exp(-fog.Density*linear)
	return vecmath.LerpColor(c, fog.Color, factor)
}
