package camera

import (
	"testing"

	"github.com/corvidlabs/rtrace/internal/vecmath"
)

func TestOrthoCamera_CenterRayHitsTarget(t *testing.T) {
	c, err := NewOrthoCamera(
		vecmath.NewVec3(0, 0, 10), vecmath.NewVec3(0, 0, 0), vecmath.NewVec3(0, 1, 0),
		6, 6, nil,
	)
	if err != nil {
		t.Fatalf("NewOrthoCamera: %v", err)
	}
	// Pixel (400,300) shifted by (-0.5,-0.5) samples its top-left corner,
	// which is the exact centre of an 800x600 image.
	ray := c.Ray(400, 300, -0.5, -0.5, 800, 600)
	if ray.Origin.Sub(vecmath.NewVec3(0, 0, 10)).Length() > 1e-9 {
		t.Errorf("center pixel origin = %v, want (0,0,10)", ray.Origin)
	}
	if ray.Direction.Sub(vecmath.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("direction = %v, want (0,0,-1)", ray.Direction)
	}
}

func TestPerspectiveCamera_RejectsBadFov(t *testing.T) {
	if _, err := NewPerspectiveCamera(vecmath.NewVec3(0, 0, 5), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 4, 3, 0); err == nil {
		t.Fatalf("expected error for fov <= 0")
	}
	if _, err := NewPerspectiveCamera(vecmath.NewVec3(0, 0, 5), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 4, 3, 180); err == nil {
		t.Fatalf("expected error for fov >= 180")
	}
}

func TestCamera_RejectsCollinearUp(t *testing.T) {
	_, err := NewOrthoCamera(vecmath.NewVec3(0, 0, 5), vecmath.Zero, vecmath.NewVec3(0, 0, 1), 4, 3, nil)
	if err == nil {
		t.Fatalf("expected error when up is collinear with view direction")
	}
}

func TestPerspectiveCamera_CenterRayPointsAtTarget(t *testing.T) {
	c, err := NewPerspectiveCamera(vecmath.NewVec3(0, 0, 5), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 4, 3, 60)
	if err != nil {
		t.Fatalf("NewPerspectiveCamera: %v", err)
	}
	// Pixel (200,150) shifted by (-0.5,-0.5) samples the exact image centre.
	ray := c.Ray(200, 150, -0.5, -0.5, 400, 300)
	want := vecmath.NewVec3(0, 0, -1)
	if ray.Direction.Sub(want).Length() > 1e-9 {
		t.Errorf("center ray direction = %v, want %v", ray.Direction, want)
	}
}

func TestGridBackground_OnAndOffLine(t *testing.T) {
	c, err := NewOrthoCamera(
		vecmath.NewVec3(0, 0, 10), vecmath.NewVec3(0, 0, 0), vecmath.NewVec3(0, 1, 0),
		6, 6, &Grid{Pitch: 1.0, Color: vecmath.NewColor(0.2, 0.2, 0.2), Thickness: 0.05},
	)
	if err != nil {
		t.Fatalf("NewOrthoCamera: %v", err)
	}

	onLineRay := c.Ray(400, 300, 0, 0, 800, 600) // hits within 0.005 of (0,0,0), on both grid lines
	_, on, ok := c.GridBackground(onLineRay)
	if !ok || !on {
		t.Errorf("expected ray through origin to be on the grid line")
	}

	offLineRay := c.Ray(450, 300, 0, 0, 800, 600)
	_, on, ok = c.GridBackground(offLineRay)
	if !ok {
		t.Fatalf("expected the grid plane to be intersected")
	}
	if on {
		t.Errorf("expected an off-grid-line pixel to report on=false")
	}
}

func TestGridBackground_NilGridReportsNotOk(t *testing.T) {
	c, _ := NewOrthoCamera(vecmath.NewVec3(0, 0, 10), vecmath.Zero, vecmath.NewVec3(0, 1, 0), 6, 6, nil)
	ray := c.Ray(400, 300, 0, 0, 800, 600)
	_, _, ok := c.GridBackground(ray)
	if ok {
		t.Errorf("expected ok=false with no grid configured")
	}
}

func TestNearGridLine(t *testing.T) {
	cases := []struct {
		coord, pitch, thickness float64
		want                    bool
	}{
		{0, 1, 0.1, true},
		{1.0, 1, 0.1, true},
		{-1.0, 1, 0.1, true},
		{0.5, 1, 0.1, false},
		{0.04, 1, 0.1, true},
		{0.06, 1, 0.1, false},
	}
	for _, c := range cases {
		got := nearGridLine(c.coord, c.pitch, c.thickness)
		if got != c.want {
			t.Errorf("nearGridLine(%v,%v,%v) = %v, want %v", c.coord, c.pitch, c.thickness, got, c.want)
		}
	}
}
