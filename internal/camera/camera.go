// Package camera implements the orthographic/perspective primary-ray
// generators and orthographic grid background from spec.md §3/§4.5/§4.6.
package camera

import (
	"fmt"
	"math"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Kind tags the camera variant (spec.md §9: tagged unions).
type Kind int

const (
	KindOrtho Kind = iota
	KindPerspective
)

// Grid configures the orthographic world-plane background (spec.md §4.6).
type Grid struct {
	Pitch     float64
	Color     vecmath.Color
	Thickness float64
}

// Camera is a tagged union over Ortho and Perspective projections, both of
// which share position/target/up and a viewport extent.
type Camera struct {
	Kind Kind

	Position vecmath.Vec3
	Target   vecmath.Vec3
	Up       vecmath.Vec3

	Width, Height float64 // ortho: world units; perspective: viewport aspect only (pixel aspect when unset)
	FovDegrees    float64 // perspective only

	Grid *Grid // ortho only, nil if unset

	// derived orthonormal basis: right, camUp, forward (forward = view dir)
	right, camUp, forward vecmath.Vec3
}

// NewOrthoCamera constructs an orthographic camera.
func NewOrthoCamera(position, target, up vecmath.Vec3, width, height float64, grid *Grid) (*Camera, error) {
	c := &Camera{Kind: KindOrtho, Position: position, Target: target, Up: up, Width: width, Height: height, Grid: grid}
	if err := c.buildBasis(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid scene: ortho camera width/height must be > 0")
	}
	return c, nil
}

// NewPerspectiveCamera constructs a perspective camera.
func NewPerspectiveCamera(position, target, up vecmath.Vec3, width, height, fovDegrees float64) (*Camera, error) {
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, fmt.Errorf("invalid scene: perspective fov must be in (0,180), got %v", fovDegrees)
	}
	c := &Camera{Kind: KindPerspective, Position: position, Target: target, Up: up, Width: width, Height: height, FovDegrees: fovDegrees}
	if err := c.buildBasis(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Camera) buildBasis() error {
	forward := c.Target.Sub(c.Position)
	if forward.Length() < 1e-12 {
		return fmt.Errorf("invalid scene: camera position and target coincide")
	}
	forward = forward.Normalize()

	up := c.Up
	if up.Length() < 1e-12 {
		return fmt.Errorf("invalid scene: camera up vector must not be zero-length")
	}
	up = up.Normalize()

	right := forward.Cross(up)
	if right.Length() < 1e-6 {
		return fmt.Errorf("invalid scene: camera up vector is collinear with the view direction")
	}
	right = right.Normalize()
	camUp := right.Cross(forward)

	c.forward, c.right, c.camUp = forward, right, camUp
	return nil
}

// Ray returns the primary ray for a pixel sample. (px, py) are pixel
// indices in [0,width)x[0,height); (dx, dy) is the subpixel offset in
// [-0.5, 0.5] pixel space, per spec.md §4.5: "pixel-to-world mapping uses
// pixel centers offset by the sample's (dx,dy)".
func (c *Camera) Ray(px, py int, dx, dy float64, pixelWidth, pixelHeight int) geom.Ray {
	// NDC in [-0.5, 0.5] across the image, with +y up.
	u := (float64(px)+0.5+dx)/float64(pixelWidth) - 0.5
	v := 0.5 - (float64(py)+0.5+dy)/float64(pixelHeight)

	switch c.Kind {
	case KindOrtho:
		origin := c.Position.
			Add(c.right.Multiply(u * c.Width)).
			Add(c.camUp.Multiply(v * c.Height))
		return geom.NewRay(origin, c.forward)
	default: // KindPerspective
		aspect := float64(pixelWidth) / float64(pixelHeight)
		if c.Width > 0 && c.Height > 0 {
			aspect = c.Width / c.Height
		}
		halfHeight := math.Tan(c.FovDegrees * math.Pi / 360.0)
		halfWidth := halfHeight * aspect
		dir := c.forward.
			Add(c.right.Multiply(u * 2 * halfWidth)).
			Add(c.camUp.Multiply(v * 2 * halfHeight)).
			Normalize()
		return geom.NewRay(c.Position, dir)
	}
}

// mostPerpendicularAxis returns the world axis (0=X, 1=Y, 2=Z) normal to
// the coordinate plane most perpendicular to the camera's view direction,
// used to pick the orthographic grid plane (spec.md §4.6).
func (c *Camera) mostPerpendicularAxis() int {
	abs := [3]float64{math.Abs(c.forward.X), math.Abs(c.forward.Y), math.Abs(c.forward.Z)}
	// The plane most perpendicular to forward is the one whose normal axis
	// has the *largest* alignment with forward.
	axis := 0
	for i := 1; i < 3; i++ {
		if abs[i] > abs[axis] {
			axis = i
		}
	}
	return axis
}

// GridBackground resolves the orthographic world-grid background for a
// ray that missed all scene geometry, per spec.md §4.6. ok is false when no
// grid is configured or the ray is parallel to the chosen plane.
func (c *Camera) GridBackground(ray geom.Ray) (color vecmath.Color, on bool, ok bool) {
	if c.Kind != KindOrtho || c.Grid == nil {
		return vecmath.Color{}, false, false
	}
	axis := c.mostPerpendicularAxis()

	var planePoint, planeNormal vecmath.Vec3
	switch axis {
	case 0:
		planeNormal = vecmath.NewVec3(1, 0, 0)
	case 1:
		planeNormal = vecmath.NewVec3(0, 1, 0)
	default:
		planeNormal = vecmath.NewVec3(0, 0, 1)
	}
	planePoint = vecmath.Zero

	denom := ray.Direction.Dot(planeNormal)
	if math.Abs(denom) < 1e-9 {
		return vecmath.Color{}, false, false
	}
	t := planePoint.Sub(ray.Origin).Dot(planeNormal) / denom
	if t <= 0 {
		return vecmath.Color{}, false, false
	}
	hit := ray.At(t)

	var a, b float64
	switch axis {
	case 0:
		a, b = hit.Y, hit.Z
	case 1:
		a, b = hit.X, hit.Z
	default:
		a, b = hit.X, hit.Y
	}

	onLine := nearGridLine(a, c.Grid.Pitch, c.Grid.Thickness) || nearGridLine(b, c.Grid.Pitch, c.Grid.Thickness)
	return c.Grid.Color, onLine, true
}

func nearGridLine(coord, pitch, thickness float64) bool {
	m := math.Mod(coord, pitch)
	if m < 0 {
		m += pitch
	}
	dist := math.Min(m, pitch-m)
	return dist <= thickness/2
}
