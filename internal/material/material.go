// Package material implements the Phong material model and the grid /
// checkerboard textures from spec.md §3 and §4.3.
package material

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Material holds the Phong coefficients for a surface, plus optional
// reflectivity and texture.
type Material struct {
	Color        vecmath.Color
	Ambient      float64
	Diffuse      float64
	Specular     float64
	Shininess    float64
	Reflectivity float64 // 0 when unset; no reflection contribution
	Texture      *Texture
}

// TextureKind tags which texture variant is active.
type TextureKind int

const (
	TextureNone TextureKind = iota
	TextureGrid
	TextureCheckerboard
)

// Texture is a tagged union over the two texture variants spec.md §3
// defines. Only the fields for Kind are meaningful.
type Texture struct {
	Kind TextureKind

	// TextureGrid
	LineColor vecmath.Color
	LineWidth float64
	CellSize  float64

	// TextureCheckerboard
	MaterialA *Material
	MaterialB *Material
}

// NewGridTexture builds a grid texture.
func NewGridTexture(lineColor vecmath.Color, lineWidth, cellSize float64) *Texture {
	return &Texture{Kind: TextureGrid, LineColor: lineColor, LineWidth: lineWidth, CellSize: cellSize}
}

// NewCheckerboardTexture builds a checkerboard texture from two
// sub-materials, each carrying its own full Phong set.
func NewCheckerboardTexture(a, b *Material) *Texture {
	return &Texture{Kind: TextureCheckerboard, MaterialA: a, MaterialB: b}
}

// EffectiveAt resolves the effective material at object-space surface
// coordinates (u, v), per spec.md §4.3. Spheres pass UV that's ignored
// (spec.md §4.1: "spheres ignore textures in the core"), which is
// equivalent to calling this with a nil Texture.
func (m Material) EffectiveAt(u, v float64) Material {
	if m.Texture == nil {
		return m
	}
	switch m.Texture.Kind {
	case TextureGrid:
		return m.effectiveGrid(u, v)
	case TextureCheckerboard:
		return m.effectiveCheckerboard(u, v)
	default:
		return m
	}
}

func (m Material) effectiveGrid(u, v float64) Material {
	tex := m.Texture
	onLine := func(coord float64) bool {
		mod := math.Mod(coord, tex.CellSize)
		if mod < 0 {
			mod += tex.CellSize
		}
		dist := math.Min(mod, tex.CellSize-mod)
		return dist <= tex.LineWidth/2
	}
	if onLine(u) || onLine(v) {
		out := m
		out.Color = tex.LineColor
		out.Texture = nil
		return out
	}
	out := m
	out.Texture = nil
	return out
}

func (m Material) effectiveCheckerboard(u, v float64) Material {
	tex := m.Texture
	idx := math.Floor(u) + math.Floor(v)
	var chosen Material
	if math.Mod(math.Abs(idx), 2) == 0 {
		chosen = *tex.MaterialA
	} else {
		chosen = *tex.MaterialB
	}
	return chosen.EffectiveAt(u, v)
}
