// Package render implements the tile-parallel, deterministically seeded
// multi-sample rasterizer from spec.md §4.7, plus its optional outline
// post-pass.
package render

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/corvidlabs/rtrace/internal/geom"
	"github.com/corvidlabs/rtrace/internal/scene"
	"github.com/corvidlabs/rtrace/internal/shading"
	"github.com/corvidlabs/rtrace/internal/vecmath"
)

// Render computes an H*W framebuffer for s, per spec.md §6's
// render(scene,width,height,options) -> framebuffer core API.
func Render(s *scene.Scene, width, height int, opts Options) (*Framebuffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	outlineEnabled := s.Settings.Outline != nil && s.Settings.Outline.Enabled
	aa := effectiveAA(opts.AntiAliasing, outlineEnabled)
	if opts.AntiAliasing == AAQuincunx && outlineEnabled {
		logger.Printf("anti-aliasing: quincunx disabled by outline post-pass, falling back to no-jitter")
	}

	start := time.Now()
	logger.Printf("render start: %dx%d, anti-aliasing=%s, max-depth=%d", width, height, aa, opts.MaxDepth)

	fb := NewFramebuffer(width, height)
	var aux *auxBuffer
	if outlineEnabled {
		aux = newAuxBuffer(width, height)
	}

	sh := shading.NewShader(s, opts.MaxDepth)
	pool := newWorkerPool(opts.Threads)

	tiles := tilesFor(width, height, opts.TileSize)
	logInterval := len(tiles)/10 + 1
	var completed int64

	renderTile := func(t tile) {
		for y := t.y0; y < t.y1; y++ {
			for x := t.x0; x < t.x1; x++ {
				renderPixel(sh, s.Camera, fb, aux, x, y, width, height, aa, opts.Samples)
			}
		}
		n := atomic.AddInt64(&completed, 1)
		if n%int64(logInterval) == 0 || int(n) == len(tiles) {
			logger.Printf("tiles complete: %d/%d", n, len(tiles))
		}
	}

	pool.run(tiles, renderTile)

	if outlineEnabled {
		applyOutline(fb, aux, s.Settings.Outline)
	}

	logger.Printf("render complete in %s", time.Since(start))
	return fb, nil
}

func renderPixel(sh *shading.Shader, cam cameraRayer, fb *Framebuffer, aux *auxBuffer, x, y, width, height int, aa AAKind, samples int) {
	jitterRng := rand.New(rand.NewSource(pixelSeed(x, y, 0, domainJitter)))
	offsets := sampleOffsets(aa, samples, jitterRng)

	accum := vecmath.Black
	for i, off := range offsets {
		lightRng := rand.New(rand.NewSource(pixelSeed(x, y, i, domainLight)))
		ray := cam.Ray(x, y, off.DX, off.DY, width, height)
		accum = accum.Add(sh.Shade(ray, 0, lightRng))

		if aux != nil && i == centerSampleIndex(len(offsets)) {
			recordAux(aux, sh, ray, x, y)
		}
	}

	fb.Set(x, y, accum.Scale(1/float64(len(offsets))))
}

// cameraRayer is the subset of camera.Camera's API the renderer depends
// on, kept narrow so tests can supply a stub.
type cameraRayer interface {
	Ray(px, py int, dx, dy float64, pixelWidth, pixelHeight int) geom.Ray
}

func centerSampleIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return n / 2
}

func recordAux(aux *auxBuffer, sh *shading.Shader, ray geom.Ray, x, y int) {
	hit, ok := sh.Scene.Intersect(ray, geom.DefaultTMin, math.Inf(1))
	if !ok {
		aux.set(x, y, auxSample{hit: false})
		return
	}
	aux.set(x, y, auxSample{depth: hit.T, normal: hit.Normal, hit: true})
}
