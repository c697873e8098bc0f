package render

import (
	"math"

	"github.com/corvidlabs/rtrace/internal/scene"
)

var axial4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diag8 = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// applyOutline runs spec.md §4.7's post-pass: per-pixel depth/normal edge
// detection against 4 or 8 neighbors, morphological dilation of the
// resulting mask by floor(thickness) pixels, then compositing outline.Color
// over the framebuffer at masked pixels.
func applyOutline(fb *Framebuffer, aux *auxBuffer, cfg *scene.Outline) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	neighbors := axial4[:]
	if cfg.Use8Neighbors {
		neighbors = diag8[:]
	}

	mask := make([]bool, fb.Width*fb.Height)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			mask[y*fb.Width+x] = edgeAt(aux, x, y, neighbors, cfg)
		}
	}

	dilation := int(math.Floor(cfg.Thickness))
	for i := 0; i < dilation; i++ {
		mask = dilate(mask, fb.Width, fb.Height)
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if mask[y*fb.Width+x] {
				fb.Set(x, y, cfg.Color)
			}
		}
	}
}

func edgeAt(aux *auxBuffer, x, y int, neighbors [][2]int, cfg *scene.Outline) bool {
	center := aux.at(x, y)
	for _, d := range neighbors {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= aux.width || ny < 0 || ny >= aux.height {
			continue
		}
		other := aux.at(nx, ny)
		if center.hit != other.hit {
			return true
		}
		if !center.hit {
			continue
		}
		nDiff := 1 - center.normal.Dot(other.normal)
		zDiff := math.Abs(center.depth - other.depth)
		edge := cfg.DepthWeight*zDiff + cfg.NormalWeight*nDiff
		if edge > cfg.Threshold {
			return true
		}
	}
	return false
}

func dilate(mask []bool, width, height int) []bool {
	out := make([]bool, len(mask))
	copy(out, mask)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y*width+x] {
				continue
			}
			for _, d := range diag8 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if mask[ny*width+nx] {
					out[y*width+x] = true
					break
				}
			}
		}
	}
	return out
}
