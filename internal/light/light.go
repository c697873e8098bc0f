// Package light implements the point/disk-area light tagged union from
// spec.md §3/§4.4.
package light

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Kind tags the variant held by a Light (spec.md §9: tagged unions, not
// dynamic dispatch).
type Kind int

const (
	KindPoint Kind = iota
	KindDisk
)

// AreaSamples is the fixed disk-sample count for soft shadows, per spec.md
// §4.4: "area light -> AREA_SAMPLES (16) disk samples".
const AreaSamples = 16

// Light is a point or disk area light. Diameter is zero for point lights.
type Light struct {
	Kind      Kind
	Position  vecmath.Vec3
	Color     vecmath.Color
	Intensity float64
	Diameter  float64
}

// NewPointLight constructs a point light.
func NewPointLight(position vecmath.Vec3, color vecmath.Color, intensity float64) (*Light, error) {
	if intensity < 0 {
		return nil, fmt.Errorf("invalid scene: light intensity must be >= 0, got %v", intensity)
	}
	return &Light{Kind: KindPoint, Position: position, Color: color, Intensity: intensity}, nil
}

// NewDiskLight constructs a disk area light with the given diameter.
func NewDiskLight(position vecmath.Vec3, color vecmath.Color, intensity, diameter float64) (*Light, error) {
	if intensity < 0 {
		return nil, fmt.Errorf("invalid scene: light intensity must be >= 0, got %v", intensity)
	}
	if diameter <= 0 {
		return nil, fmt.Errorf("invalid scene: disk light diameter must be > 0, got %v", diameter)
	}
	return &Light{Kind: KindDisk, Position: position, Color: color, Intensity: intensity, Diameter: diameter}, nil
}

// SampleCount returns how many shadow samples shading should take toward
// this light: 1 for a point light, AreaSamples for a disk light.
func (l *Light) SampleCount() int {
	if l.Kind == KindPoint {
		return 1
	}
	return AreaSamples
}

// SamplePosition returns the i-th sample position on the light, oriented
// facing the hit point at sampling time (spec.md §3: "oriented facing the
// hit point at sampling time"). Point lights ignore i and rng. Disk lights
// draw a uniform point on a disk perpendicular to the light->point
// direction, using an orthonormal basis derived deterministically from
// that direction (spec.md §4.4: "disk basis is any orthonormal frame
// perpendicular to the direction from the light to P").
func (l *Light) SamplePosition(point vecmath.Vec3, i int, rng *rand.Rand) vecmath.Vec3 {
	if l.Kind == KindPoint {
		return l.Position
	}
	dir := point.Sub(l.Position)
	if dir.Length() < 1e-12 {
		dir = vecmath.NewVec3(0, 0, 1)
	} else {
		dir = dir.Normalize()
	}
	u, v, _ := vecmath.OrthonormalBasis(dir)

	radius := l.Diameter / 2
	r := radius * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	offset := u.Multiply(r * math.Cos(theta)).Add(v.Multiply(r * math.Sin(theta)))
	return l.Position.Add(offset)
}
