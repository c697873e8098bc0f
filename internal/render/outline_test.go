package render

import (
	"testing"

	"github.com/corvidlabs/rtrace/internal/scene"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

func TestEdgeAt_HitMissMismatchIsEdge(t *testing.T) {
	aux := newAuxBuffer(3, 1)
	aux.set(0, 0, auxSample{hit: true, depth: 1, normal: vecmath.NewVec3(0, 0, 1)})
	aux.set(1, 0, auxSample{hit: false})

	cfg := &scene.Outline{DepthWeight: 1, NormalWeight: 1, Threshold: 0.1}
	if !edgeAt(aux, 0, 0, axial4[:], cfg) {
		t.Error("hit/miss boundary should be detected as an edge")
	}
}

func TestEdgeAt_FlatSurfaceIsNotEdge(t *testing.T) {
	aux := newAuxBuffer(3, 1)
	n := vecmath.NewVec3(0, 0, 1)
	for x := 0; x < 3; x++ {
		aux.set(x, 0, auxSample{hit: true, depth: 5, normal: n})
	}
	cfg := &scene.Outline{DepthWeight: 1, NormalWeight: 1, Threshold: 0.01}
	if edgeAt(aux, 1, 0, axial4[:], cfg) {
		t.Error("identical depth/normal neighbors should not be an edge")
	}
}

func TestEdgeAt_DepthDiscontinuityIsEdge(t *testing.T) {
	aux := newAuxBuffer(3, 1)
	n := vecmath.NewVec3(0, 0, 1)
	aux.set(0, 0, auxSample{hit: true, depth: 1, normal: n})
	aux.set(1, 0, auxSample{hit: true, depth: 50, normal: n})
	cfg := &scene.Outline{DepthWeight: 1, NormalWeight: 1, Threshold: 0.1}
	if !edgeAt(aux, 0, 0, axial4[:], cfg) {
		t.Error("large depth jump should be detected as an edge")
	}
}

func TestDilate_ExpandsByOneRing(t *testing.T) {
	width, height := 5, 5
	mask := make([]bool, width*height)
	mask[2*width+2] = true // center pixel

	out := dilate(mask, width, height)

	for _, d := range diag8 {
		x, y := 2+d[0], 2+d[1]
		if !out[y*width+x] {
			t.Errorf("neighbor (%d,%d) should be set after dilation", x, y)
		}
	}
	if !out[2*width+2] {
		t.Error("original masked pixel should remain set")
	}
	if out[0] {
		t.Error("far corner should remain unset after a single dilation")
	}
}

func TestApplyOutline_DisabledIsNoop(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	aux := newAuxBuffer(2, 2)
	applyOutline(fb, aux, &scene.Outline{Enabled: false})
	for _, p := range fb.Pixels {
		if p != 0 {
			t.Fatal("disabled outline must not modify the framebuffer")
		}
	}
}

func TestApplyOutline_CompositesColorAtEdges(t *testing.T) {
	fb := NewFramebuffer(3, 1)
	aux := newAuxBuffer(3, 1)
	aux.set(0, 0, auxSample{hit: true, depth: 1, normal: vecmath.NewVec3(0, 0, 1)})
	aux.set(1, 0, auxSample{hit: false})
	aux.set(2, 0, auxSample{hit: false})

	color := vecmath.NewColor(1, 0, 1)
	cfg := &scene.Outline{Enabled: true, DepthWeight: 1, NormalWeight: 1, Threshold: 0.1, Color: color, Thickness: 1}
	applyOutline(fb, aux, cfg)

	if fb.Pixels[0] != 255 || fb.Pixels[1] != 0 || fb.Pixels[2] != 255 {
		t.Errorf("edge pixel 0 = (%d,%d,%d), want outline color", fb.Pixels[0], fb.Pixels[1], fb.Pixels[2])
	}
}
