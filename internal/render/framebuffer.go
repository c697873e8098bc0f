package render

import "github.com/corvidlabs/rtrace/internal/vecmath"

// Framebuffer is an H*W*3 8-bit sRGB image, row-major, top-left origin
// (spec.md §6).
type Framebuffer struct {
	Width, Height int
	Pixels        []uint8 // len == Width*Height*3
}

// NewFramebuffer allocates a zeroed framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]uint8, width*height*3)}
}

// Set writes one pixel's color, converting to 8-bit sRGB via truncation
// (vecmath.Color.ToRGB8).
func (fb *Framebuffer) Set(x, y int, c vecmath.Color) {
	r, g, b := c.ToRGB8()
	i := (y*fb.Width + x) * 3
	fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2] = r, g, b
}

// auxSample is the per-pixel depth/normal recorded for the outline pass
// (spec.md §4.7: "record the depth and normal of the center sample (or
// sample 0) into the auxiliary buffer").
type auxSample struct {
	depth  float64
	normal vecmath.Vec3
	hit    bool
}

type auxBuffer struct {
	width, height int
	samples       []auxSample
}

func newAuxBuffer(width, height int) *auxBuffer {
	return &auxBuffer{width: width, height: height, samples: make([]auxSample, width*height)}
}

func (a *auxBuffer) set(x, y int, s auxSample) {
	a.samples[y*a.width+x] = s
}

func (a *auxBuffer) at(x, y int) auxSample {
	return a.samples[y*a.width+x]
}
