// Command rtrace renders a JSON scene document to a PNG file, the external
// collaborator CLI described in spec.md §6.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/corvidlabs/rtrace/internal/primitive"
	"github.com/corvidlabs/rtrace/internal/render"
	"github.com/corvidlabs/rtrace/internal/sceneio"
	"github.com/corvidlabs/rtrace/internal/stl"
)

type stlSource struct{}

func (stlSource) Load(filename string) ([]primitive.Triangle, error) {
	return stl.Load(filename)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("rtrace", flag.ContinueOnError)

	var input, output, aaFlag string
	var width, height, maxDepth, samples int
	fs.StringVar(&input, "i", "", "input scene document (JSON)")
	fs.StringVar(&input, "input", "", "input scene document (JSON)")
	fs.StringVar(&output, "o", "", "output PNG path")
	fs.StringVar(&output, "output", "", "output PNG path")
	fs.IntVar(&width, "w", 0, "framebuffer width in pixels")
	fs.IntVar(&width, "width", 0, "framebuffer width in pixels")
	fs.IntVar(&height, "H", 0, "framebuffer height in pixels")
	fs.IntVar(&height, "height", 0, "framebuffer height in pixels")
	fs.IntVar(&maxDepth, "max-depth", render.UnsetMaxDepth, "maximum reflection recursion depth (default 10; 0 disables reflection)")
	fs.IntVar(&samples, "samples", 0, "samples per pixel for stochastic anti-aliasing")
	fs.StringVar(&aaFlag, "anti-aliasing", "no-jitter", "anti-aliasing mode: quincunx, stochastic, or no-jitter")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	runID := uuid.New()
	logger := log.New(os.Stderr, fmt.Sprintf("rtrace[%s] ", runID), log.LstdFlags)

	if input == "" || output == "" || width <= 0 || height <= 0 {
		logger.Println("error: -i/--input, -o/--output, -w/--width, and -H/--height are required")
		return 2
	}

	aa, err := parseAntiAliasing(aaFlag)
	if err != nil {
		logger.Printf("error: %v", err)
		return 2
	}

	if err := renderToFile(logger, input, output, width, height, maxDepth, samples, aa); err != nil {
		logger.Printf("error: %v", err)
		return 1
	}

	logger.Printf("wrote %s", output)
	return 0
}

func parseAntiAliasing(s string) (render.AAKind, error) {
	switch s {
	case "quincunx":
		return render.AAQuincunx, nil
	case "stochastic":
		return render.AAStochastic, nil
	case "no-jitter", "":
		return render.AANoJitter, nil
	default:
		return 0, fmt.Errorf("unknown anti-aliasing mode %q", s)
	}
}

func renderToFile(logger *log.Logger, input, output string, width, height, maxDepth, samples int, aa render.AAKind) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening scene document: %w", err)
	}
	defer f.Close()

	doc, err := sceneio.Decode(f)
	if err != nil {
		return fmt.Errorf("parsing scene document: %w", err)
	}

	s, err := sceneio.Build(doc, stlSource{})
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	fb, err := render.Render(s, width, height, render.Options{
		MaxDepth:     maxDepth,
		Samples:      samples,
		AntiAliasing: aa,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, framebufferImage(fb)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func framebufferImage(fb *render.Framebuffer) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			i := (y*fb.Width + x) * 3
			img.Set(x, y, color.RGBA{R: fb.Pixels[i], G: fb.Pixels[i+1], B: fb.Pixels[i+2], A: 255})
		}
	}
	return img
}
